package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// Timeouts bounds the input handlers the engine arms.
type Timeouts struct {
	Launch time.Duration // first roll call of a session
	Retry  time.Duration // roll call restarted after a timeout
	Play   time.Duration // play registration after a color is picked
}

// DefaultTimeouts returns the durations the buttons were tuned for.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Launch: 50 * time.Second,
		Retry:  30 * time.Second,
		Play:   30 * time.Second,
	}
}

// Engine routes host requests to the roll call, play and exit controllers.
// It holds no per-session data; every call receives and returns a SessionState.
type Engine struct {
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	timeouts Timeouts
	tokens   func() string
	now      func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTimeouts overrides the input handler timeouts. Zero fields keep their defaults.
func WithTimeouts(t Timeouts) EngineOption {
	return func(e *Engine) {
		if t.Launch > 0 {
			e.timeouts.Launch = t.Launch
		}
		if t.Retry > 0 {
			e.timeouts.Retry = t.Retry
		}
		if t.Play > 0 {
			e.timeouts.Play = t.Play
		}
	}
}

// WithTokenSource sets the generator used when a request carries no id.
func WithTokenSource(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.tokens = fn
		}
	}
}

// WithClock sets the time source used for hook timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   slog.New(slog.DiscardHandler),
		timeouts: DefaultTimeouts(),
		tokens:   uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeouts returns the effective input handler timeouts.
func (e *Engine) Timeouts() Timeouts {
	return e.timeouts
}

// turn carries the per-request context through the controllers.
// The response accumulates here while state flows by value.
type turn struct {
	ctx       context.Context
	sessionID string
	req       domain.Request
	resp      domain.Response
	handler   string
	token     string
}

// correlationToken returns the token for a registration armed in this turn.
// A turn arms at most one registration, so repeated calls agree.
func (e *Engine) correlationToken(t *turn) string {
	if t.token != "" {
		return t.token
	}
	if t.req.RequestID != "" {
		t.token = t.req.RequestID
	} else {
		t.token = e.tokens()
	}
	return t.token
}

func ms(d time.Duration) int {
	return int(d / time.Millisecond)
}
