package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/colorchanger/internal/dto"
	"github.com/aretw0/colorchanger/pkg/domain"
)

func TestEncode_Keys(t *testing.T) {
	s := domain.NewSessionState()
	s.Phase = domain.PhasePlay
	s.DeviceIDs = append(s.DeviceIDs, "A", "B")
	s.ButtonCount = 2
	s.IsRollCallComplete = true
	s.CurrentInputHandlerID = "tok"
	s.UserColor = domain.ColorRed

	attrs, err := dto.Encode(s)
	require.NoError(t, err)

	assert.Equal(t, "PLAY", attrs[domain.KeyState])
	assert.Equal(t, []string{domain.DeviceSentinel, "A", "B"}, attrs[domain.KeyDeviceIDs])
	assert.Equal(t, 2, attrs[domain.KeyButtonCount])
	assert.Equal(t, true, attrs[domain.KeyIsRollCallComplete])
	assert.Equal(t, false, attrs[domain.KeyExpectingSkillConfirmation])
	assert.Equal(t, false, attrs[domain.KeyExpectingEndSkillConfirmation])
	assert.Equal(t, "tok", attrs[domain.KeyCurrentInputHandlerID])
	assert.Equal(t, "RED", attrs[domain.KeyUserColor])
}

func TestEncode_OmitsEmptyOptionalKeys(t *testing.T) {
	attrs, err := dto.Encode(domain.NewSessionState())
	require.NoError(t, err)
	assert.NotContains(t, attrs, domain.KeyUserColor)
	assert.NotContains(t, attrs, domain.KeyCurrentInputHandlerID)
}

func TestDecode_FromJSON(t *testing.T) {
	raw := `{
		"state": "EXIT",
		"device_ids": ["Device ID Listings", "A"],
		"button_count": 1,
		"is_roll_call_complete": false,
		"expecting_end_skill_confirmation": true,
		"current_input_handler_id": "tok"
	}`
	var attrs dto.Attributes
	require.NoError(t, json.Unmarshal([]byte(raw), &attrs))

	s, err := dto.Decode(attrs)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseExit, s.Phase)
	assert.Equal(t, []string{domain.DeviceSentinel, "A"}, s.DeviceIDs)
	assert.Equal(t, 1, s.ButtonCount)
	assert.True(t, s.ExpectingEndSkillConfirmation)
	assert.Equal(t, "tok", s.CurrentInputHandlerID)
	assert.NoError(t, s.Validate())
}

func TestDecode_WeakTypes(t *testing.T) {
	s, err := dto.Decode(dto.Attributes{
		"state":                 "ROLL_CALL",
		"device_ids":            []any{domain.DeviceSentinel, "A"},
		"button_count":          "1",
		"is_roll_call_complete": "false",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.ButtonCount)
	assert.False(t, s.IsRollCallComplete)
}

func TestDecode_EmptyRecordStartsFresh(t *testing.T) {
	s, err := dto.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.NewSessionState(), s)

	s, err = dto.Decode(dto.Attributes{"button_count": 0})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseRollCall, s.Phase)
	assert.Equal(t, []string{domain.DeviceSentinel}, s.DeviceIDs)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := dto.Decode(dto.Attributes{"button_count": []any{"x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRoundTrip(t *testing.T) {
	s := domain.NewSessionState()
	s.Phase = domain.PhasePlay
	s.DeviceIDs = append(s.DeviceIDs, "A", "B")
	s.ButtonCount = 2
	s.IsRollCallComplete = true
	s.UserColor = domain.ColorBlue

	attrs, err := dto.Encode(s)
	require.NoError(t, err)
	raw, err := json.Marshal(attrs)
	require.NoError(t, err)

	var back dto.Attributes
	require.NoError(t, json.Unmarshal(raw, &back))
	got, err := dto.Decode(back)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
