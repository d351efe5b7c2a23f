package domain

// Attribute keys of the persisted session record.
const (
	KeyState                         = "state"
	KeyDeviceIDs                     = "device_ids"
	KeyButtonCount                   = "button_count"
	KeyIsRollCallComplete            = "is_roll_call_complete"
	KeyExpectingSkillConfirmation    = "expecting_skill_confirmation"
	KeyExpectingEndSkillConfirmation = "expecting_end_skill_confirmation"
	KeyCurrentInputHandlerID         = "current_input_handler_id"
	KeyUserColor                     = "user_color"
)

// WaitingAudio is played while the engine waits for button presses.
const WaitingAudio = `<audio src="https://s3.amazonaws.com/ask-soundlibrary/foley/amzn_sfx_rhythmic_ticking_30s_01.mp3"/>`
