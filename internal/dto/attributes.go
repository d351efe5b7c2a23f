// Package dto converts session state to and from the flat attribute record
// hosts and stores carry between turns.
package dto

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// Attributes is the flat key/value record of a session.
type Attributes map[string]any

// Encode flattens a session state into its attribute record.
func Encode(s domain.SessionState) (Attributes, error) {
	out := Attributes{}
	if err := mapstructure.Decode(s, &out); err != nil {
		return nil, fmt.Errorf("encode session attributes: %w", err)
	}
	// Keep the record free of typed strings so any codec can carry it.
	out[domain.KeyState] = string(s.Phase)
	if s.UserColor != "" {
		out[domain.KeyUserColor] = string(s.UserColor)
	}
	return out, nil
}

// Decode rebuilds a session state from an attribute record. Numbers may arrive
// as floats or strings (JSON, Redis), so decoding is weakly typed.
// A record without a state starts a fresh roll call.
func Decode(attrs Attributes) (domain.SessionState, error) {
	s := domain.NewSessionState()
	if len(attrs) == 0 {
		return s, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           &s,
	})
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("decode session attributes: %w", err)
	}
	if err := dec.Decode(map[string]any(attrs)); err != nil {
		return domain.SessionState{}, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	if s.Phase == "" {
		s.Phase = domain.PhaseRollCall
	}
	if len(s.DeviceIDs) == 0 {
		s.DeviceIDs = []string{domain.DeviceSentinel}
	}
	return s, nil
}

// Marshal encodes the attribute record of s as JSON, the form stores persist.
func Marshal(s *domain.SessionState) ([]byte, error) {
	attrs, err := Encode(*s)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("marshal session attributes: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON attribute record.
func Unmarshal(data []byte) (*domain.SessionState, error) {
	var attrs Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("unmarshal session attributes: %w", err)
	}
	s, err := Decode(attrs)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
