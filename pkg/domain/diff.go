package domain

import "slices"

// StateDiff represents the changes a turn made to a session.
// It is designed to be serialized to JSON for partial updates on watching clients.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Phase is set when the top-level state changed.
	Phase *Phase `json:"state,omitempty"`

	// Attributes contains only changed scalar attributes, keyed by their record name.
	Attributes map[string]any `json:"attributes,omitempty"`

	// DevicesAppended lists devices registered by this turn.
	// A roll call restart shows up as DevicesReset instead.
	DevicesAppended []string `json:"devices_appended,omitempty"`
	DevicesReset    bool     `json:"devices_reset,omitempty"`

	// Ended is set when the turn closed the session.
	Ended bool `json:"ended,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(sessionID string, oldState, newState *SessionState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{SessionID: sessionID}

	// 1. Phase
	if oldState == nil || oldState.Phase != newState.Phase {
		phase := newState.Phase
		diff.Phase = &phase
	}

	// 2. Scalar attributes
	diff.Attributes = diffAttributes(oldState, newState)

	// 3. Devices (append-only within a roll call)
	diffDevices(diff, oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func scalarAttributes(s *SessionState) map[string]any {
	return map[string]any{
		KeyButtonCount:                   s.ButtonCount,
		KeyIsRollCallComplete:            s.IsRollCallComplete,
		KeyExpectingSkillConfirmation:    s.ExpectingSkillConfirmation,
		KeyExpectingEndSkillConfirmation: s.ExpectingEndSkillConfirmation,
		KeyCurrentInputHandlerID:         s.CurrentInputHandlerID,
		KeyUserColor:                     string(s.UserColor),
	}
}

func diffAttributes(old, new *SessionState) map[string]any {
	next := scalarAttributes(new)
	if old == nil {
		return next
	}

	prev := scalarAttributes(old)
	delta := make(map[string]any)
	for k, v := range next {
		if prev[k] != v {
			delta[k] = v
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffDevices(diff *StateDiff, old, new *SessionState) {
	newDevices := new.RegisteredDevices()
	if old == nil {
		if len(newDevices) > 0 {
			diff.DevicesAppended = newDevices
		}
		return
	}

	oldDevices := old.RegisteredDevices()
	if len(newDevices) >= len(oldDevices) && slices.Equal(oldDevices, newDevices[:len(oldDevices)]) {
		if len(newDevices) > len(oldDevices) {
			diff.DevicesAppended = newDevices[len(oldDevices):]
		}
		return
	}

	// Prefix mismatch: the roll call was restarted.
	diff.DevicesReset = true
	if len(newDevices) > 0 {
		diff.DevicesAppended = newDevices
	}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Phase == nil &&
		len(d.Attributes) == 0 &&
		len(d.DevicesAppended) == 0 &&
		!d.DevicesReset &&
		!d.Ended
}
