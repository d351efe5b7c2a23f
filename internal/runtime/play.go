package runtime

import (
	"strconv"

	"github.com/aretw0/colorchanger/pkg/animation"
	"github.com/aretw0/colorchanger/pkg/domain"
)

// selectColor arms the play registration for the requested color.
// Colors off the allow-list are reprompted without touching the state.
func (e *Engine) selectColor(t *turn, s domain.SessionState, raw string) domain.SessionState {
	t.handler = "play.select_color"
	color, ok := domain.ParseColor(raw)
	if !ok {
		e.logger.Info("invalid color requested", "session_id", t.sessionID, "color", raw)
		t.resp.Ask(repromptInvalidColor)
		t.resp.Say(speechInvalidColor)
		t.resp.Microphone = domain.MicrophoneOpen
		return s
	}

	e.supersede(t, s)
	token := e.correlationToken(t)
	t.resp.Start = playHandler(token, e.timeouts.Play)

	devices := s.RegisteredDevices()
	t.resp.Light(
		animation.Idle(playIdleLight(color), devices...),
		animation.ButtonDown(playDownLight(color), devices...),
		animation.ButtonUp(playUpLight(color), devices...),
	)
	t.resp.Say(colorSelected(color)...)

	s.UserColor = color
	s.CurrentInputHandlerID = token
	e.logger.Info("play armed", "session_id", t.sessionID, "color", color, "token", token)
	t.resp.Microphone = domain.MicrophoneOpen
	return s
}

// handleButtonPressed names the registered button that went down.
func (e *Engine) handleButtonPressed(t *turn, s domain.SessionState, ev domain.ButtonEvent) domain.SessionState {
	t.handler = "play.button_pressed"
	var deviceID string
	if ids := ev.DeviceIDs(); len(ids) > 0 {
		deviceID = ids[0]
	}

	if idx, ok := s.DeviceIndex(deviceID); ok {
		t.resp.Say("Button "+strconv.Itoa(idx)+". ", domain.WaitingAudio)
	} else {
		e.logger.Info("unregistered button pressed", "session_id", t.sessionID, "device_id", deviceID)
		t.resp.Say(speechUnregistered, speechUnregisteredWhy, domain.WaitingAudio)
	}
	t.resp.Microphone = domain.MicrophoneClosed
	return s
}

// handlePlayTimeout winds play down and asks whether to quit.
func (e *Engine) handlePlayTimeout(t *turn, s domain.SessionState) domain.SessionState {
	t.handler = "play.timeout"
	t.resp.Say(speechPlayTimeout...)
	t.resp.Ask(repromptPlayTimeout...)

	if _, ok := animation.LookupColor(s.UserColor.Name()); !ok {
		e.logger.Warn("no play color recorded, fading to black", "session_id", t.sessionID, "color", s.UserColor)
	}
	devices := s.RegisteredDevices()
	t.resp.Light(
		animation.Idle(playTimeoutLight(s.UserColor), devices...),
		animation.ButtonDown(animation.DefaultButtonDown(), devices...),
		animation.ButtonUp(animation.DefaultButtonUp(), devices...),
	)

	s.ExpectingEndSkillConfirmation = true
	s.Phase = domain.PhaseExit
	t.resp.Microphone = domain.MicrophoneOpen
	return s
}
