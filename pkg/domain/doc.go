/*
Package domain contains the core types of the color changer session engine.

It defines the session record persisted between turns, the requests a voice host
delivers, and the responses (speech, light directives, input handler registrations)
the engine hands back. This package is kept pure and free of I/O and persistence,
following Hexagonal Architecture principles.

# Key Entities

  - SessionState: The flat attribute record that survives a turn boundary.
  - Request: One turn of host input (launch, intent, button events, session end).
  - ButtonEvent: A named event reported by an armed input handler.
  - Directive / Animation: A light program for one or more buttons.
  - InputHandler: A time-bounded registration that listens for button presses.
  - Response: Everything the host must render for a turn.
*/
package domain
