package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/colorchanger"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/session"
)

func newTestServer() *Server {
	engine := colorchanger.New()
	return NewServer(engine, engine.Manager(), nil)
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeTurn(t *testing.T, result *mcp.CallToolResult) session.TurnResult {
	t.Helper()
	require.False(t, result.IsError, textOf(t, result))
	var res session.TurnResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &res))
	return res
}

func TestTools_PlayThroughRollCall(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()

	result, err := s.handleLaunch(ctx, call("launch_session", map[string]any{"session_id": "s1", "request_id": "r1"}))
	require.NoError(t, err)
	res := decodeTurn(t, result)
	assert.Equal(t, domain.PhaseRollCall, res.State.Phase)
	assert.Equal(t, "r1", res.State.CurrentInputHandlerID)

	// The token defaults to the stored one.
	result, err = s.handlePressButton(ctx, call("press_button", map[string]any{
		"session_id": "s1",
		"event":      "second_button_checked_in",
		"devices":    "dev-a, dev-b",
	}))
	require.NoError(t, err)
	res = decodeTurn(t, result)
	assert.Equal(t, domain.PhasePlay, res.State.Phase)
	assert.Equal(t, []string{domain.DeviceSentinel, "dev-a", "dev-b"}, res.State.DeviceIDs)

	result, err = s.handleSay(ctx, call("say", map[string]any{"session_id": "s1", "intent": "COLOR", "color": "red", "request_id": "r2"}))
	require.NoError(t, err)
	res = decodeTurn(t, result)
	assert.Equal(t, domain.ColorRed, res.State.UserColor)

	result, err = s.handleInspect(ctx, call("inspect_session", map[string]any{"session_id": "s1"}))
	require.NoError(t, err)
	var state domain.SessionState
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &state))
	assert.Equal(t, "r2", state.CurrentInputHandlerID)

	result, err = s.handleEndSession(ctx, call("end_session", map[string]any{"session_id": "s1"}))
	require.NoError(t, err)
	res = decodeTurn(t, result)
	assert.True(t, res.Response.EndSession)

	result, err = s.handleInspect(ctx, call("inspect_session", map[string]any{"session_id": "s1"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestTools_StaleToken(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()

	_, err := s.handleLaunch(ctx, call("launch_session", map[string]any{"session_id": "s1", "request_id": "r1"}))
	require.NoError(t, err)

	result, err := s.handlePressButton(ctx, call("press_button", map[string]any{
		"session_id": "s1",
		"event":      "first_button_checked_in",
		"devices":    "dev-a",
		"token":      "old",
	}))
	require.NoError(t, err)
	res := decodeTurn(t, result)
	assert.Equal(t, 0, res.State.ButtonCount)
	assert.Equal(t, domain.MicrophoneClosed, res.Response.Microphone)
}

func TestTools_ArgumentErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()

	tests := []struct {
		name string
		fn   func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args map[string]any
	}{
		{"launch without session", s.handleLaunch, map[string]any{}},
		{"press without event", s.handlePressButton, map[string]any{"session_id": "s1"}},
		{"press unknown event", s.handlePressButton, map[string]any{"session_id": "s1", "event": "double_tap"}},
		{"say without intent", s.handleSay, map[string]any{"session_id": "s1"}},
		{"inspect without session", s.handleInspect, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.fn(ctx, call("tool", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
		})
	}
}

func TestResource_Sessions(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()
	_, err := s.handleLaunch(ctx, call("launch_session", map[string]any{"session_id": "s1"}))
	require.NoError(t, err)

	contents, err := s.readSessions(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.JSONEq(t, `{"sessions":["s1"]}`, text.Text)
}

func TestHostURL(t *testing.T) {
	assert.Equal(t, "localhost:8081", hostURL(":8081"))
	assert.Equal(t, "0.0.0.0:8081", hostURL("0.0.0.0:8081"))
}
