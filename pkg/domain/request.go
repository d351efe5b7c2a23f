package domain

// RequestKind is the top-level shape of a host request.
type RequestKind string

const (
	RequestLaunch            RequestKind = "launch"
	RequestInputHandlerEvent RequestKind = "input_handler_event"
	RequestIntent            RequestKind = "intent"
	RequestSessionEnded      RequestKind = "session_ended"
)

// Intent is the resolved meaning of an utterance.
type Intent string

const (
	IntentYes    Intent = "yes"
	IntentNo     Intent = "no"
	IntentHelp   Intent = "help"
	IntentStop   Intent = "stop"
	IntentCancel Intent = "cancel"
	IntentColor  Intent = "color"
)

// Request is a single turn delivered by the host.
type Request struct {
	Kind RequestKind `json:"kind"`

	// RequestID identifies this turn. It becomes the correlation token of any
	// input handler armed while serving it.
	RequestID string `json:"request_id,omitempty"`

	// OriginatingRequestID is the token of the registration that produced Events.
	OriginatingRequestID string        `json:"originating_request_id,omitempty"`
	Events               []ButtonEvent `json:"events,omitempty"`

	Intent Intent `json:"intent,omitempty"`
	// Color is the resolved color slot of a color intent.
	Color string `json:"color,omitempty"`

	// Reason is set by the host on session_ended requests.
	Reason string `json:"reason,omitempty"`
}
