package domain

import "strings"

// Microphone tells the host what to do with the session after speaking.
type Microphone string

const (
	// MicrophoneDefault leaves the host's default behaviour in place.
	MicrophoneDefault Microphone = "default"
	// MicrophoneOpen waits for a spoken reply.
	MicrophoneOpen Microphone = "open"
	// MicrophoneClosed keeps the session alive without listening, so input handler events can arrive.
	MicrophoneClosed Microphone = "closed"
)

// Response is everything the host renders for one turn.
// Hosts emit Stop first, then Start, then Lights in order.
type Response struct {
	Speech     []string          `json:"speech,omitempty"`
	Reprompt   []string          `json:"reprompt,omitempty"`
	Stop       *StopInputHandler `json:"stop_input_handler,omitempty"`
	Start      *InputHandler     `json:"start_input_handler,omitempty"`
	Lights     []Directive       `json:"set_light,omitempty"`
	Microphone Microphone        `json:"microphone"`
	EndSession bool              `json:"end_session"`
}

// NewResponse returns an empty response with the default microphone behaviour.
func NewResponse() Response {
	return Response{Microphone: MicrophoneDefault}
}

// Say appends speech fragments.
func (r *Response) Say(parts ...string) {
	r.Speech = append(r.Speech, parts...)
}

// Ask appends reprompt fragments.
func (r *Response) Ask(parts ...string) {
	r.Reprompt = append(r.Reprompt, parts...)
}

// Light appends light directives.
func (r *Response) Light(ds ...Directive) {
	r.Lights = append(r.Lights, ds...)
}

// SpeechText joins the speech fragments the way hosts render them.
func (r Response) SpeechText() string {
	return strings.Join(r.Speech, " ")
}

// RepromptText joins the reprompt fragments.
func (r Response) RepromptText() string {
	return strings.Join(r.Reprompt, " ")
}
