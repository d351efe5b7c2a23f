package runtime

import "github.com/aretw0/colorchanger/pkg/domain"

var welcome = []string{
	"Welcome to the Color Changer skill.",
	"This skill provides a brief introduction to the core",
	"functionality that every Echo Button skill should have.",
	"We'll cover roll call, starting and stopping the Input Handler,",
	"button events and Input Handler timeout events. ",
	"Let's get started with roll call. ",
	"Roll call wakes up the buttons to make sure",
	"they're connected and ready for play. ",
	"Ok. Press the first button and wait for confirmation",
	"before pressing the second button.",
	domain.WaitingAudio,
}

const (
	speechFatal   = "Sorry, there was some problem. Please try again later!!"
	speechGoodbye = "Good bye!"

	repromptCatchAll = "Please say again, or say help if you're not sure what to do."
	speechCatchAll   = "Sorry, I didn't get that. " + repromptCatchAll

	repromptInvalidColor = "What color was that? Please pick a valid color!"
	speechInvalidColor   = "Sorry, I didn't get that. " + repromptInvalidColor

	repromptPickColor     = "Please pick a color: green, red, or blue"
	repromptKeepGoing     = "Pick a different color, red, blue, or green."
	speechBreak           = "<break time='1s'/>"
	speechFirstCheckIn    = "Hello, button 1."
	speechRetryRollCall   = "Ok. Press the first button, wait for confirmation,"
	speechRetryRollCall2  = "then press the second button."
	speechUnregistered    = "Unregistered button"
	speechUnregisteredWhy = "Only buttons registered during roll call are in play."
)

var (
	speechLearnEvents = []string{
		"Now let's learn about button events.",
		"Please select one of the following colors: red, blue, or green.",
	}

	speechRollCallTimeout = []string{
		"For this skill we need two buttons.",
		"Would you like more time to press the buttons?",
	}
	repromptRollCallTimeout = "Say yes to go back and add buttons, or no to exit now."

	speechPlayTimeout = []string{
		"The input handler has timed out.",
		"That concludes our test, would you like to quit?",
	}
	repromptPlayTimeout = []string{
		"Would you like to exit?",
		"Say Yes to exit, or No to keep going",
	}

	speechHelpPlay = []string{
		"Now that you have registered two buttons, ",
		"you can pick a color to show when the buttons are pressed. ",
		"Select one of the following colors: red, blue, or green. ",
		"If you do not wish to continue, you can say exit. ",
	}
	repromptHelpPlay = []string{
		"Pick a color to test your buttons: red, blue, or green. ",
		" Or say cancel or exit to quit. ",
	}

	speechHelpRollCall = []string{
		"You will need two Echo buttons to to use this skill. ",
		"Each of the two buttons you plan to use ",
		"must be pressed for the skill to register them. ",
		"Would you like to continue and register two Echo buttons? ",
	}
	repromptHelpRollCall = "You can say yes to continue, or no or exit to quit."
)

func colorSelected(c domain.Color) []string {
	name := c.Name()
	return []string{
		"Ok. " + name + " it is.",
		"When you press a button, it will now turn " + name + ".",
		"Pressing the button will also interrupt me if I'm speaking",
		"or playing music. I'll keep talking so you can interrupt me.",
		"Go ahead and try it.",
		domain.WaitingAudio,
	}
}
