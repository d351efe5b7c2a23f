package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/colorchanger"
	httpAdapter "github.com/aretw0/colorchanger/pkg/adapters/http"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/observability"
	"github.com/aretw0/colorchanger/pkg/session"
)

func newTestServer(t *testing.T, opts ...httpAdapter.Option) (*httptest.Server, *colorchanger.Engine) {
	t.Helper()
	engine := colorchanger.New()
	srv := httptest.NewServer(httpAdapter.NewHandler(engine, engine.Manager(), opts...))
	t.Cleanup(srv.Close)
	return srv, engine
}

func postTurn(t *testing.T, base, sessionID string, req domain.Request) *session.TurnResult {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(base+"/sessions/"+sessionID+"/turns", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res session.TurnResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return &res
}

func TestPostTurn_LaunchAndCheckIn(t *testing.T) {
	srv, _ := newTestServer(t)

	res := postTurn(t, srv.URL, "s1", colorchanger.Launch("req-1"))
	assert.Equal(t, domain.PhaseRollCall, res.State.Phase)
	require.NotNil(t, res.Response.Start)
	assert.Equal(t, "req-1", res.Response.Start.Token)
	assert.Equal(t, domain.MicrophoneClosed, res.Response.Microphone)

	res = postTurn(t, srv.URL, "s1", colorchanger.Events("req-1", domain.ButtonEvent{
		Name:        domain.EventFirstCheckedIn,
		InputEvents: []domain.InputEvent{{DeviceID: "dev-a"}},
	}))
	assert.Equal(t, 1, res.State.ButtonCount)
	require.NotNil(t, res.Diff)
	assert.Equal(t, []string{"dev-a"}, res.Diff.DevicesAppended)
}

func TestPostTurn_WireFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"kind":"input_handler_event","originating_request_id":"nope","events":[{"name":"timeout","input_events":[]}]}`
	resp, err := http.Post(srv.URL+"/sessions/s1/turns", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	response := res["response"].(map[string]any)
	assert.Equal(t, "closed", response["microphone"])
	assert.Equal(t, false, response["end_session"])
}

func TestPostTurn_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing kind", `{"intent":"help"}`},
		{"unknown event", `{"kind":"input_handler_event","events":[{"name":"double_tap"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/sessions/s1/turns", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

type failingEngine struct{}

func (failingEngine) Turn(context.Context, string, domain.Request) (*session.TurnResult, error) {
	return nil, errors.New("store down")
}

func TestPostTurn_StoreFailure(t *testing.T) {
	engine := colorchanger.New()
	srv := httptest.NewServer(httpAdapter.NewHandler(failingEngine{}, engine.Manager()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions/s1/turns", "application/json", strings.NewReader(`{"kind":"launch"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSessions_ListGetDelete(t *testing.T) {
	srv, _ := newTestServer(t)
	postTurn(t, srv.URL, "s1", colorchanger.Launch("r1"))
	postTurn(t, srv.URL, "s2", colorchanger.Launch("r2"))

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	var list map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Equal(t, []string{"s1", "s2"}, list["sessions"])

	resp, err = http.Get(srv.URL + "/sessions/s1")
	require.NoError(t, err)
	var state domain.SessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	resp.Body.Close()
	assert.Equal(t, "r1", state.CurrentInputHandlerID)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/s1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/sessions/s1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndInfo(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ok", health["status"])

	resp, err = http.Get(srv.URL + "/info")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	resp.Body.Close()
	assert.Equal(t, colorchanger.Version, info["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	srv, _ := newTestServer(t, httpAdapter.WithMetrics(metrics, reg))

	postTurn(t, srv.URL, "s1", colorchanger.Launch("r1"))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `colorchanger_turn_duration_seconds_count{kind="launch"} 1`)
}

func readFrames(t *testing.T, sc *bufio.Scanner, n int) []string {
	t.Helper()
	var frames []string
	for len(frames) < n && sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "data: ") {
			frames = append(frames, strings.TrimPrefix(line, "data: "))
		}
	}
	require.Len(t, frames, n)
	return frames
}

func TestSubscribeEvents_Session(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?session_id=s1&watch=devices,ended", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	assert.Equal(t, []string{"connected"}, readFrames(t, sc, 1))

	// Launch changes the state but registers nothing, so the filter drops it.
	postTurn(t, srv.URL, "s1", colorchanger.Launch("r1"))
	postTurn(t, srv.URL, "s1", colorchanger.Events("r1", domain.ButtonEvent{
		Name:        domain.EventFirstCheckedIn,
		InputEvents: []domain.InputEvent{{DeviceID: "dev-a"}},
	}))

	frames := readFrames(t, sc, 1)
	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(frames[0]), &diff))
	assert.Equal(t, "s1", diff.SessionID)
	assert.Equal(t, []string{"dev-a"}, diff.DevicesAppended)
}

func TestSubscribeEvents_RequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
