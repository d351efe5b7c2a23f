package runtime

import "github.com/aretw0/colorchanger/pkg/domain"

// pendingConfirmation is the question a yes or no answers.
type pendingConfirmation int

const (
	pendingNone pendingConfirmation = iota
	pendingMoreTime                 // roll call timed out: more time to press the buttons?
	pendingQuit                     // play timed out: quit?
	pendingRegister                 // help during roll call: continue registering?
	pendingUnclear                  // in EXIT with nothing asked
)

func pending(s domain.SessionState) pendingConfirmation {
	switch {
	case s.Phase == domain.PhaseExit && s.ExpectingEndSkillConfirmation && !s.IsRollCallComplete:
		return pendingMoreTime
	case s.Phase == domain.PhaseExit && s.ExpectingEndSkillConfirmation:
		return pendingQuit
	case s.Phase == domain.PhaseExit:
		return pendingUnclear
	case s.Phase == domain.PhaseRollCall && s.ExpectingSkillConfirmation:
		return pendingRegister
	default:
		return pendingNone
	}
}

func (e *Engine) yes(t *turn, s domain.SessionState) domain.SessionState {
	switch pending(s) {
	case pendingMoreTime, pendingRegister:
		return e.confirmContinue(t, s)
	case pendingQuit:
		return e.confirmQuit(t, s)
	case pendingUnclear:
		return e.catchAll(t, s)
	default:
		return e.help(t, s)
	}
}

func (e *Engine) no(t *turn, s domain.SessionState) domain.SessionState {
	switch pending(s) {
	case pendingMoreTime, pendingRegister:
		return e.stop(t, s)
	case pendingQuit:
		return e.decline(t, s)
	case pendingUnclear:
		return e.catchAll(t, s)
	default:
		return e.help(t, s)
	}
}

// confirmContinue restarts roll call with the retry timeout.
func (e *Engine) confirmContinue(t *turn, s domain.SessionState) domain.SessionState {
	t.resp.Say(speechRetryRollCall, speechRetryRollCall2, domain.WaitingAudio)
	s = e.startRollCall(t, s, e.timeouts.Retry)
	t.handler = "exit.confirm_continue"
	return s
}

// confirmQuit ends the session after the play timeout question.
func (e *Engine) confirmQuit(t *turn, s domain.SessionState) domain.SessionState {
	s = e.endSession(t, s)
	t.handler = "exit.confirm_quit"
	return s
}

// decline returns to play so the user can pick another color.
func (e *Engine) decline(t *turn, s domain.SessionState) domain.SessionState {
	t.handler = "exit.decline"
	t.resp.Ask(repromptKeepGoing)
	t.resp.Say("Ok, let's keep going.", repromptKeepGoing)
	s.Phase = domain.PhasePlay
	s.ExpectingEndSkillConfirmation = false
	t.resp.Microphone = domain.MicrophoneOpen
	return s
}

// help stops the live registration so it cannot interrupt, then explains the current stage.
func (e *Engine) help(t *turn, s domain.SessionState) domain.SessionState {
	t.handler = "exit.help"
	e.supersede(t, s)
	if s.IsRollCallComplete {
		t.resp.Say(speechHelpPlay...)
		t.resp.Ask(repromptHelpPlay...)
	} else {
		t.resp.Say(speechHelpRollCall...)
		t.resp.Ask(repromptHelpRollCall)
		s.ExpectingSkillConfirmation = true
	}
	t.resp.Microphone = domain.MicrophoneOpen
	return s
}

// stop handles stop and cancel.
func (e *Engine) stop(t *turn, s domain.SessionState) domain.SessionState {
	e.supersede(t, s)
	s = e.endSession(t, s)
	t.handler = "exit.stop"
	return s
}

func (e *Engine) sessionEnded(t *turn, s domain.SessionState) domain.SessionState {
	e.logger.Info("session ended by host", "session_id", t.sessionID, "reason", t.req.Reason)
	s = e.endSession(t, s)
	t.handler = "exit.session_ended"
	return s
}

func (e *Engine) endSession(t *turn, s domain.SessionState) domain.SessionState {
	t.handler = "exit.end_session"
	t.resp.Speech = []string{speechGoodbye}
	t.resp.Reprompt = nil
	t.resp.EndSession = true
	t.resp.Microphone = domain.MicrophoneDefault
	return s
}

// catchAll answers anything no controller understood.
func (e *Engine) catchAll(t *turn, s domain.SessionState) domain.SessionState {
	t.handler = "exit.catch_all"
	t.resp.Ask(repromptCatchAll)
	t.resp.Say(speechCatchAll)
	t.resp.Microphone = domain.MicrophoneOpen
	return s
}
