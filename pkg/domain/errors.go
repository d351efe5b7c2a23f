package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnexpectedRequest is returned for request shapes no controller can serve.
// The router turns it into the fatal apology response.
var ErrUnexpectedRequest = errors.New("unexpected request")

// ErrUnknownEvent is returned when an input handler event name is not one the engine arms.
var ErrUnknownEvent = errors.New("unknown input handler event")

// ErrInvalidState is returned when a session record breaks one of its invariants.
var ErrInvalidState = errors.New("invalid session state")
