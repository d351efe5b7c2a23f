package runtime

import (
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/colorchanger/pkg/animation"
	"github.com/aretw0/colorchanger/pkg/domain"
)

// newSession greets the user and starts the first roll call.
func (e *Engine) newSession(t *turn) domain.SessionState {
	t.handler = "rollcall.new_session"
	t.resp.Say(welcome...)
	return e.startRollCall(t, domain.NewSessionState(), e.timeouts.Launch)
}

// startRollCall arms the check-in registration and resets the roll call attributes.
func (e *Engine) startRollCall(t *turn, s domain.SessionState, timeout time.Duration) domain.SessionState {
	e.supersede(t, s)
	token := e.correlationToken(t)
	t.resp.Start = rollCallHandler(token, timeout)
	t.resp.Light(
		animation.Idle(rollCallResetLight()),
		animation.ButtonDown(checkInDownLight()),
		animation.ButtonUp(checkInUpLight()),
	)

	s.Phase = domain.PhaseRollCall
	s.DeviceIDs = []string{domain.DeviceSentinel}
	s.ButtonCount = 0
	s.IsRollCallComplete = false
	s.ExpectingSkillConfirmation = false
	s.ExpectingEndSkillConfirmation = false
	s.UserColor = ""
	s.CurrentInputHandlerID = token

	e.logger.Info("roll call armed", "session_id", t.sessionID, "token", token, "timeout", timeout)
	t.resp.Microphone = domain.MicrophoneClosed
	return s
}

// handleFirstCheckIn registers the first device. Repeats are ignored.
func (e *Engine) handleFirstCheckIn(t *turn, s domain.SessionState, ev domain.ButtonEvent) (domain.SessionState, error) {
	t.handler = "rollcall.first_check_in"
	t.resp.Microphone = domain.MicrophoneClosed
	if s.Phase != domain.PhaseRollCall || s.ButtonCount != 0 {
		e.logger.Debug("ignoring duplicate first check-in", "session_id", t.sessionID, "button_count", s.ButtonCount)
		return s, nil
	}

	ids := ev.DeviceIDs()
	if len(ids) == 0 || !isDeviceID(ids[0]) {
		return s, fmt.Errorf("%w: first check-in without a device", domain.ErrUnexpectedRequest)
	}
	first := ids[0]

	t.resp.Say(speechFirstCheckIn, domain.WaitingAudio)
	t.resp.Light(animation.Idle(checkInIdleLight(), first))

	s.DeviceIDs = append(s.DeviceIDs, first)
	s.ButtonCount = 1
	e.registered(t, first, 1)
	return s, nil
}

// handleSecondCheckIn completes roll call. The fuzzy recognizer may report the
// first device again, so the new device is resolved against what is registered.
func (e *Engine) handleSecondCheckIn(t *turn, s domain.SessionState, ev domain.ButtonEvent) (domain.SessionState, error) {
	t.handler = "rollcall.second_check_in"
	if s.Phase != domain.PhaseRollCall || s.ButtonCount >= domain.MaxButtons {
		e.logger.Debug("ignoring duplicate second check-in", "session_id", t.sessionID, "button_count", s.ButtonCount)
		t.resp.Microphone = domain.MicrophoneClosed
		return s, nil
	}

	added, err := resolveSecondCheckIn(s, ev.DeviceIDs())
	if err != nil {
		return s, err
	}

	if s.ButtonCount == 0 {
		t.resp.Say("hello buttons 1 and 2", speechBreak, "Awesome!")
	} else {
		t.resp.Say("hello, button 2", speechBreak, "Awesome. I've registered two buttons.")
	}
	t.resp.Say(speechLearnEvents...)
	t.resp.Ask(repromptPickColor)

	for _, id := range added {
		s.DeviceIDs = append(s.DeviceIDs, id)
		e.registered(t, id, len(s.DeviceIDs)-1)
	}
	s.ButtonCount = domain.MaxButtons
	s.IsRollCallComplete = true
	s.Phase = domain.PhasePlay

	devices := s.RegisteredDevices()
	t.resp.Light(
		animation.Idle(rollCallCompleteLight(), devices...),
		animation.ButtonUp(animation.DefaultButtonUp(), devices...),
		animation.ButtonDown(animation.DefaultButtonDown(), devices...),
	)
	t.resp.Microphone = domain.MicrophoneOpen
	return s, nil
}

// resolveSecondCheckIn picks the devices a second check-in adds.
// With nothing registered the first two reported ids are taken in order.
// With one registered, the first reported id is taken unless it is the known
// device, in which case the second one is.
func resolveSecondCheckIn(s domain.SessionState, ids []string) ([]string, error) {
	var added []string
	switch s.ButtonCount {
	case 0:
		if len(ids) < 2 {
			return nil, fmt.Errorf("%w: second check-in reported %d devices", domain.ErrUnexpectedRequest, len(ids))
		}
		added = ids[:2]
	default:
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: second check-in reported no devices", domain.ErrUnexpectedRequest)
		}
		pick := ids[0]
		if slices.Contains(s.DeviceIDs[1:], pick) {
			if len(ids) < 2 {
				return nil, fmt.Errorf("%w: second check-in only reported device %q", domain.ErrUnexpectedRequest, pick)
			}
			pick = ids[1]
		}
		added = []string{pick}
	}

	seen := slices.Clone(s.DeviceIDs[1:])
	for _, id := range added {
		if !isDeviceID(id) || slices.Contains(seen, id) {
			return nil, fmt.Errorf("%w: second check-in cannot register %q", domain.ErrUnexpectedRequest, id)
		}
		seen = append(seen, id)
	}
	return slices.Clone(added), nil
}

// handleRollCallTimeout asks whether the user wants more time.
func (e *Engine) handleRollCallTimeout(t *turn, s domain.SessionState) domain.SessionState {
	t.handler = "rollcall.timeout"
	t.resp.Say(speechRollCallTimeout...)
	t.resp.Ask(repromptRollCallTimeout)

	devices := s.RegisteredDevices()
	t.resp.Light(
		animation.Idle(rollCallTimeoutLight(), devices...),
		animation.ButtonUp(animation.DefaultButtonUp(), devices...),
		animation.ButtonDown(animation.DefaultButtonDown(), devices...),
	)

	s.ExpectingEndSkillConfirmation = true
	s.Phase = domain.PhaseExit
	t.resp.Microphone = domain.MicrophoneOpen
	return s
}

func (e *Engine) registered(t *turn, deviceID string, index int) {
	e.logger.Info("device registered", "session_id", t.sessionID, "device_id", deviceID, "index", index)
	if e.hooks.OnDeviceRegistered != nil {
		e.hooks.OnDeviceRegistered(t.ctx, &domain.DeviceEvent{
			Timestamp: e.now(),
			SessionID: t.sessionID,
			DeviceID:  deviceID,
			Index:     index,
		})
	}
}

func isDeviceID(id string) bool {
	return id != "" && id != domain.DeviceSentinel
}
