package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Phase is the top-level mode of a session.
type Phase string

const (
	PhaseRollCall Phase = "ROLL_CALL" // Discovering the two buttons
	PhasePlay     Phase = "PLAY"      // Buttons registered, reacting to presses
	PhaseExit     Phase = "EXIT"      // Waiting for a quit/continue confirmation
)

// RollCallStage is the nested progress of roll call, derived from the button count.
type RollCallStage string

const (
	StageAwaitingFirst  RollCallStage = "AWAITING_FIRST"
	StageAwaitingSecond RollCallStage = "AWAITING_SECOND"
	StageComplete       RollCallStage = "COMPLETE"
)

// DeviceSentinel occupies index 0 of DeviceIDs. It is never a real device.
const DeviceSentinel = "Device ID Listings"

// MaxButtons is the number of devices a roll call registers.
const MaxButtons = 2

// Color is one of the colors a user may pick during play.
type Color string

const (
	ColorRed   Color = "RED"
	ColorGreen Color = "GREEN"
	ColorBlue  Color = "BLUE"
)

// AllowedColors is the play-mode allow-list, in the order prompts read it.
var AllowedColors = []Color{ColorRed, ColorBlue, ColorGreen}

// ParseColor resolves a spoken color against the allow-list, ignoring case and surrounding space.
func ParseColor(raw string) (Color, bool) {
	c := Color(strings.ToUpper(strings.TrimSpace(raw)))
	if slices.Contains(AllowedColors, c) {
		return c, true
	}
	return "", false
}

// Name returns the lowercase spoken form ("red").
func (c Color) Name() string {
	return strings.ToLower(string(c))
}

// SessionState is the canonical set of attributes that survives a turn boundary.
// Controllers receive it by value and return the next value; nothing else is persisted.
type SessionState struct {
	Phase                         Phase    `json:"state" mapstructure:"state"`
	DeviceIDs                     []string `json:"device_ids" mapstructure:"device_ids"`
	ButtonCount                   int      `json:"button_count" mapstructure:"button_count"`
	IsRollCallComplete            bool     `json:"is_roll_call_complete" mapstructure:"is_roll_call_complete"`
	ExpectingSkillConfirmation    bool     `json:"expecting_skill_confirmation" mapstructure:"expecting_skill_confirmation"`
	ExpectingEndSkillConfirmation bool     `json:"expecting_end_skill_confirmation" mapstructure:"expecting_end_skill_confirmation"`
	CurrentInputHandlerID         string   `json:"current_input_handler_id,omitempty" mapstructure:"current_input_handler_id,omitempty"`
	UserColor                     Color    `json:"user_color,omitempty" mapstructure:"user_color,omitempty"`
}

// NewSessionState returns the state of a freshly launched session.
func NewSessionState() SessionState {
	return SessionState{
		Phase:     PhaseRollCall,
		DeviceIDs: []string{DeviceSentinel},
	}
}

// Clone returns a deep copy, so the caller can mutate it without touching the original.
func (s SessionState) Clone() SessionState {
	c := s
	c.DeviceIDs = slices.Clone(s.DeviceIDs)
	return c
}

// RollCallStage derives the roll-call progress from ButtonCount.
func (s SessionState) RollCallStage() RollCallStage {
	switch {
	case s.ButtonCount <= 0:
		return StageAwaitingFirst
	case s.ButtonCount == 1:
		return StageAwaitingSecond
	default:
		return StageComplete
	}
}

// RegisteredDevices returns the real device ids (everything after the sentinel).
func (s SessionState) RegisteredDevices() []string {
	if len(s.DeviceIDs) <= 1 {
		return []string{}
	}
	return slices.Clone(s.DeviceIDs[1:])
}

// DeviceIndex returns the 1-based position of a registered device.
func (s SessionState) DeviceIndex(deviceID string) (int, bool) {
	if deviceID == "" || deviceID == DeviceSentinel {
		return 0, false
	}
	for i := 1; i < len(s.DeviceIDs); i++ {
		if s.DeviceIDs[i] == deviceID {
			return i, true
		}
	}
	return 0, false
}

// HasInputHandler reports whether a registration token is recorded.
func (s SessionState) HasInputHandler() bool {
	return s.CurrentInputHandlerID != ""
}

// Validate checks the structural invariants of the record.
func (s SessionState) Validate() error {
	switch s.Phase {
	case PhaseRollCall, PhasePlay, PhaseExit:
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidState, s.Phase)
	}
	if len(s.DeviceIDs) < 1 || len(s.DeviceIDs) > MaxButtons+1 {
		return fmt.Errorf("%w: device_ids has %d entries", ErrInvalidState, len(s.DeviceIDs))
	}
	if s.DeviceIDs[0] != DeviceSentinel {
		return fmt.Errorf("%w: device_ids[0] must be the sentinel", ErrInvalidState)
	}
	if s.ButtonCount != len(s.DeviceIDs)-1 {
		return fmt.Errorf("%w: button_count %d does not match %d devices", ErrInvalidState, s.ButtonCount, len(s.DeviceIDs)-1)
	}
	seen := make(map[string]struct{}, len(s.DeviceIDs))
	for _, id := range s.DeviceIDs[1:] {
		if id == "" || id == DeviceSentinel {
			return fmt.Errorf("%w: invalid device id %q", ErrInvalidState, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate device id %q", ErrInvalidState, id)
		}
		seen[id] = struct{}{}
	}
	if s.IsRollCallComplete != (s.ButtonCount == MaxButtons) {
		return fmt.Errorf("%w: is_roll_call_complete disagrees with button_count", ErrInvalidState)
	}
	if s.UserColor != "" {
		if _, ok := ParseColor(string(s.UserColor)); !ok {
			return fmt.Errorf("%w: user_color %q", ErrInvalidState, s.UserColor)
		}
	}
	return nil
}
