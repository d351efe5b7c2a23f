package domain_test

import (
	"testing"

	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionState(t *testing.T) {
	s := domain.NewSessionState()

	assert.Equal(t, domain.PhaseRollCall, s.Phase)
	assert.Equal(t, []string{domain.DeviceSentinel}, s.DeviceIDs)
	assert.Equal(t, domain.StageAwaitingFirst, s.RollCallStage())
	assert.Empty(t, s.RegisteredDevices())
	require.NoError(t, s.Validate())
}

func TestSessionState_Clone(t *testing.T) {
	s := domain.NewSessionState()
	s.DeviceIDs = append(s.DeviceIDs, "A")
	s.ButtonCount = 1

	c := s.Clone()
	c.DeviceIDs[1] = "B"

	assert.Equal(t, "A", s.DeviceIDs[1], "clone must not share the device slice")
}

func TestSessionState_DeviceIndex(t *testing.T) {
	s := domain.SessionState{
		Phase:              domain.PhasePlay,
		DeviceIDs:          []string{domain.DeviceSentinel, "X", "Y"},
		ButtonCount:        2,
		IsRollCallComplete: true,
	}

	idx, ok := s.DeviceIndex("Y")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = s.DeviceIndex(domain.DeviceSentinel)
	assert.False(t, ok, "sentinel is never a device")

	_, ok = s.DeviceIndex("Z")
	assert.False(t, ok)

	assert.Equal(t, domain.StageComplete, s.RollCallStage())
	assert.Equal(t, []string{"X", "Y"}, s.RegisteredDevices())
}

func TestSessionState_Validate(t *testing.T) {
	valid := domain.SessionState{
		Phase:              domain.PhasePlay,
		DeviceIDs:          []string{domain.DeviceSentinel, "X", "Y"},
		ButtonCount:        2,
		IsRollCallComplete: true,
		UserColor:          domain.ColorRed,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*domain.SessionState)
	}{
		{"Unknown Phase", func(s *domain.SessionState) { s.Phase = "LOBBY" }},
		{"Count Mismatch", func(s *domain.SessionState) { s.ButtonCount = 1 }},
		{"Duplicate Device", func(s *domain.SessionState) { s.DeviceIDs[2] = "X" }},
		{"Missing Sentinel", func(s *domain.SessionState) { s.DeviceIDs[0] = "W" }},
		{"Too Many Devices", func(s *domain.SessionState) {
			s.DeviceIDs = append(s.DeviceIDs, "Z")
			s.ButtonCount = 3
		}},
		{"Complete Flag Early", func(s *domain.SessionState) {
			s.DeviceIDs = s.DeviceIDs[:2]
			s.ButtonCount = 1
		}},
		{"Bad Color", func(s *domain.SessionState) { s.UserColor = "PURPLE" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid.Clone()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), domain.ErrInvalidState)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, ok := domain.ParseColor("Blue")
	assert.True(t, ok)
	assert.Equal(t, domain.ColorBlue, c)
	assert.Equal(t, "blue", c.Name())

	c, ok = domain.ParseColor("  green ")
	assert.True(t, ok)
	assert.Equal(t, domain.ColorGreen, c)

	_, ok = domain.ParseColor("PURPLE")
	assert.False(t, ok)

	_, ok = domain.ParseColor("")
	assert.False(t, ok)
}

func TestEventName_Text(t *testing.T) {
	var ev domain.EventName
	require.NoError(t, ev.UnmarshalText([]byte("second_button_checked_in")))
	assert.Equal(t, domain.EventSecondCheckedIn, ev)

	text, err := domain.EventTimeout.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "timeout", string(text))

	err = ev.UnmarshalText([]byte("third_button_checked_in"))
	assert.ErrorIs(t, err, domain.ErrUnknownEvent)
}
