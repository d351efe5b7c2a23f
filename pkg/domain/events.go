package domain

import (
	"context"
	"fmt"
	"time"
)

// EventName is the closed set of input handler events the engine arms.
type EventName int

const (
	EventUnknown EventName = iota
	EventFirstCheckedIn
	EventSecondCheckedIn
	EventButtonDown
	EventTimeout
)

var eventWireNames = map[EventName]string{
	EventFirstCheckedIn:  "first_button_checked_in",
	EventSecondCheckedIn: "second_button_checked_in",
	EventButtonDown:      "button_down_event",
	EventTimeout:         "timeout",
}

// ParseEventName maps a wire name to its EventName.
func ParseEventName(name string) (EventName, error) {
	for ev, wire := range eventWireNames {
		if wire == name {
			return ev, nil
		}
	}
	return EventUnknown, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// String returns the wire name.
func (e EventName) String() string {
	if wire, ok := eventWireNames[e]; ok {
		return wire
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (e EventName) MarshalText() ([]byte, error) {
	if e == EventUnknown {
		return nil, fmt.Errorf("%w: cannot encode unknown event", ErrUnknownEvent)
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EventName) UnmarshalText(text []byte) error {
	parsed, err := ParseEventName(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// InputEvent is a single raw press reported alongside a named event.
type InputEvent struct {
	DeviceID string `json:"device_id"`
	Action   string `json:"action,omitempty"`
	Color    string `json:"color,omitempty"`
}

// ButtonEvent is one named event reported by the input handler.
type ButtonEvent struct {
	Name        EventName    `json:"name"`
	InputEvents []InputEvent `json:"input_events"`
}

// DeviceIDs returns the reported device ids in order.
func (e ButtonEvent) DeviceIDs() []string {
	ids := make([]string, 0, len(e.InputEvents))
	for _, in := range e.InputEvents {
		ids = append(ids, in.DeviceID)
	}
	return ids
}

// TransitionEvent describes a turn that moved (or kept) the session between phases.
type TransitionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
	Handler   string    `json:"handler"`
	From      Phase     `json:"from"`
	To        Phase     `json:"to"`
}

// CorrelationEvent describes an input handler event dropped for carrying a stale token.
type CorrelationEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"session_id,omitempty"`
	Expected    string    `json:"expected"`
	Originating string    `json:"originating"`
}

// DeviceEvent describes a device registered during roll call.
type DeviceEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
	DeviceID  string    `json:"device_id"`
	Index     int       `json:"index"`
}

// FatalEvent describes a turn that ended in the apology path.
type FatalEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTransition       func(context.Context, *TransitionEvent)
	OnStaleEvent       func(context.Context, *CorrelationEvent)
	OnDeviceRegistered func(context.Context, *DeviceEvent)
	OnFatal            func(context.Context, *FatalEvent)
}
