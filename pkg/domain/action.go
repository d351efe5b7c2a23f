package domain

// Trigger is the button event that plays a light directive.
type Trigger string

const (
	TriggerNone       Trigger = "none"
	TriggerButtonDown Trigger = "buttonDown"
	TriggerButtonUp   Trigger = "buttonUp"
)

// AnimationStep is one segment of a light program.
type AnimationStep struct {
	DurationMS int    `json:"duration_ms"`
	Blend      bool   `json:"blend"`
	Color      string `json:"color"` // RRGGBB
}

// Animation is an immutable light program. Build a fresh one per directive.
type Animation struct {
	Repeat   int             `json:"repeat"`
	Targets  []string        `json:"targets"`
	Sequence []AnimationStep `json:"sequence"`
}

// Directive asks the host to play an animation on some devices when Trigger fires.
// Empty TargetDevices means every paired device.
type Directive struct {
	Trigger       Trigger   `json:"trigger"`
	TargetDevices []string  `json:"target_devices"`
	Animation     Animation `json:"animation"`
}

// InputAction is the press transition a pattern step matches.
type InputAction string

const (
	ActionDown InputAction = "down"
	ActionUp   InputAction = "up"
)

// PatternStep matches one press, optionally restricted to device proxies.
type PatternStep struct {
	GadgetIDs []string    `json:"gadget_ids,omitempty"`
	Action    InputAction `json:"action"`
}

// Recognizer matches sequences of presses.
type Recognizer struct {
	Anchor  string        `json:"anchor"`
	Fuzzy   bool          `json:"fuzzy"`
	Pattern []PatternStep `json:"pattern"`
}

// ReportingMode selects which presses an event reports.
type ReportingMode string

const (
	ReportMatches ReportingMode = "matches"
	ReportHistory ReportingMode = "history"
)

// RecognizerTimedOut is the host's built-in timeout recognizer.
const RecognizerTimedOut = "timed out"

// EventSpec defines a named event raised when its recognizers match.
type EventSpec struct {
	TriggerRecognizers []string      `json:"trigger_recognizers"`
	ReportingMode      ReportingMode `json:"reporting_mode"`
	EndsHandler        bool          `json:"ends_handler"`
	MaxInvocations     int           `json:"max_invocations,omitempty"`
}

// InputHandler is a request to listen for button events for a bounded time.
type InputHandler struct {
	// Token is the correlation id events from this registration will carry.
	Token         string                `json:"token"`
	TimeoutMS     int                   `json:"timeout_ms"`
	DeviceProxies []string              `json:"device_proxies"`
	Recognizers   map[string]Recognizer `json:"recognizers"`
	Events        map[string]EventSpec  `json:"events"`
}

// StopInputHandler cancels the registration identified by Token.
type StopInputHandler struct {
	Token string `json:"token"`
}
