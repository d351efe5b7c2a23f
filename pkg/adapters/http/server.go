package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/colorchanger"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/observability"
	"github.com/aretw0/colorchanger/pkg/session"
)

// maxBodyBytes bounds a host request body.
const maxBodyBytes = 1 << 20

// Engine runs one turn against a stored session.
type Engine interface {
	Turn(ctx context.Context, sessionID string, req domain.Request) (*session.TurnResult, error)
}

// Sessions is the read and delete side of session storage.
type Sessions interface {
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

// Server exposes the session engine to hosts over HTTP.
type Server struct {
	Engine   Engine
	Sessions Sessions
	Streams  *StreamManager

	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records turn durations in m and serves g on /metrics.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// NewServer creates a Server. Use Handler to mount it.
func NewServer(engine Engine, sessions Sessions, opts ...Option) *Server {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, sessions Sessions, opts ...Option) http.Handler {
	return NewServer(engine, sessions, opts...).Handler()
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/turns", s.PostTurn)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PostTurn handles POST /sessions/{id}/turns.
func (s *Server) PostTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req domain.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostTurn: invalid request body", "session_id", sessionID, "err", err)
		return
	}
	if req.Kind == "" {
		http.Error(w, "Request kind is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	res, err := s.Engine.Turn(r.Context(), sessionID, req)
	if s.metrics != nil {
		s.metrics.ObserveTurn(req.Kind, time.Since(start))
	}
	if err != nil {
		http.Error(w, "Turn failed", http.StatusInternalServerError)
		s.logger.Error("PostTurn: turn failed", "session_id", sessionID, "err", err)
		return
	}

	if res.Diff != nil && !res.Diff.IsEmpty() {
		if payload, err := json.Marshal(res.Diff); err == nil {
			s.Streams.Broadcast(sessionID, string(payload))
		}
	}

	writeJSON(w, http.StatusOK, res, s.logger)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		http.Error(w, "List failed", http.StatusInternalServerError)
		s.logger.Error("ListSessions failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids}, s.logger)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	state, err := s.Sessions.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Load failed", http.StatusInternalServerError)
		s.logger.Error("GetSession failed", "session_id", sessionID, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, state, s.logger)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), sessionID); err != nil {
		http.Error(w, "Delete failed", http.StatusInternalServerError)
		s.logger.Error("DeleteSession failed", "session_id", sessionID, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "colorchanger-http",
		"version": colorchanger.Version,
	}, s.logger)
}

// SubscribeEvents handles the GET /events request (SSE).
// Clients pass session_id and optionally watch, a comma separated list of
// state, attributes, devices and ended.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	var watch []string
	if raw := r.URL.Query().Get("watch"); raw != "" {
		watch = strings.Split(raw, ",")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()
	s.logger.Info("SSE: subscribed", "session_id", sessionID)

	writeEvent(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !matchesWatch(msg, watch) {
				continue
			}
			writeEvent(w, "data: "+msg+"\n\n")
			flusher.Flush()
		}
	}
}

// matchesWatch reports whether a serialized diff touches any watched field.
// Payloads that do not decode are passed through.
func matchesWatch(msg string, watch []string) bool {
	var diff domain.StateDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watch {
		switch strings.TrimSpace(field) {
		case "state":
			if diff.Phase != nil {
				return true
			}
		case "attributes":
			if len(diff.Attributes) > 0 {
				return true
			}
		case "devices":
			if len(diff.DevicesAppended) > 0 || diff.DevicesReset {
				return true
			}
		case "ended":
			if diff.Ended {
				return true
			}
		}
	}
	return false
}

func writeEvent(w http.ResponseWriter, frame string) {
	_, _ = w.Write([]byte(frame))
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
