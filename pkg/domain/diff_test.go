package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	play := PhasePlay
	exit := PhaseExit

	oneDevice := SessionState{
		Phase:                 PhaseRollCall,
		DeviceIDs:             []string{DeviceSentinel, "A"},
		ButtonCount:           1,
		CurrentInputHandlerID: "tok-1",
	}
	twoDevices := SessionState{
		Phase:                 PhasePlay,
		DeviceIDs:             []string{DeviceSentinel, "A", "B"},
		ButtonCount:           2,
		IsRollCallComplete:    true,
		CurrentInputHandlerID: "tok-1",
	}

	tests := []struct {
		name     string
		old      *SessionState
		new      *SessionState
		wantDiff *StateDiff
	}{
		{
			name: "No Changes",
			old:  &twoDevices,
			new:  &twoDevices,
		},
		{
			name: "Second Device Registered",
			old:  &oneDevice,
			new:  &twoDevices,
			wantDiff: &StateDiff{
				SessionID: "sess-1",
				Phase:     &play,
				Attributes: map[string]any{
					KeyButtonCount:        2,
					KeyIsRollCallComplete: true,
				},
				DevicesAppended: []string{"B"},
			},
		},
		{
			name: "Play Timeout",
			old:  &twoDevices,
			new: func() *SessionState {
				s := twoDevices.Clone()
				s.Phase = PhaseExit
				s.ExpectingEndSkillConfirmation = true
				return &s
			}(),
			wantDiff: &StateDiff{
				SessionID: "sess-1",
				Phase:     &exit,
				Attributes: map[string]any{
					KeyExpectingEndSkillConfirmation: true,
				},
			},
		},
		{
			name: "Roll Call Restart",
			old:  &oneDevice,
			new: func() *SessionState {
				s := NewSessionState()
				s.CurrentInputHandlerID = "tok-2"
				return &s
			}(),
			wantDiff: &StateDiff{
				SessionID: "sess-1",
				Attributes: map[string]any{
					KeyButtonCount:           0,
					KeyCurrentInputHandlerID: "tok-2",
				},
				DevicesReset: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff("sess-1", tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.wantDiff) {
				gotJSON, _ := json.MarshalIndent(got, "", "  ")
				wantJSON, _ := json.MarshalIndent(tt.wantDiff, "", "  ")
				t.Errorf("Diff() mismatch.\nGot:\n%s\nWant:\n%s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDiff_InitialLoad(t *testing.T) {
	s := NewSessionState()
	diff := Diff("sess-1", nil, &s)
	if diff == nil {
		t.Fatal("expected a diff for initial load")
	}
	if diff.Phase == nil || *diff.Phase != PhaseRollCall {
		t.Errorf("expected phase ROLL_CALL, got %v", diff.Phase)
	}
	data, _ := json.Marshal(diff)
	if !strings.Contains(string(data), `"button_count":0`) {
		t.Errorf("expected full attributes in initial diff, got %s", data)
	}
}
