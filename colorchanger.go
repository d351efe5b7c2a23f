package colorchanger

import (
	"context"
	"log/slog"

	"github.com/aretw0/colorchanger/internal/runtime"
	"github.com/aretw0/colorchanger/pkg/adapters/memory"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/ports"
	"github.com/aretw0/colorchanger/pkg/session"
)

// Timeouts bounds the input handlers the engine arms.
type Timeouts = runtime.Timeouts

// DefaultTimeouts returns the launch, retry and play timeouts of a stock session.
func DefaultTimeouts() Timeouts {
	return runtime.DefaultTimeouts()
}

// Engine is the high-level entry point for the library.
// It pairs the stateless session engine with a session manager, so hosts can
// either pass state in themselves (Handle) or let the engine keep it (Turn).
type Engine struct {
	runtime *runtime.Engine
	manager *session.Manager

	store    ports.SessionStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	timeouts Timeouts
	tokens   func() string
	sessOpts []session.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine and its manager.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTimeouts overrides the input handler timeouts. Zero fields keep the default.
func WithTimeouts(t Timeouts) Option {
	return func(e *Engine) {
		e.timeouts = t
	}
}

// WithTokenSource sets the generator used for correlation tokens when a request carries no id.
func WithTokenSource(fn func() string) Option {
	return func(e *Engine) {
		e.tokens = fn
	}
}

// WithStore sets where Turn persists sessions. The default is an in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithSessionOptions passes options (locker, lock TTL) to the session manager.
func WithSessionOptions(opts ...session.Option) Option {
	return func(e *Engine) {
		e.sessOpts = append(e.sessOpts, opts...)
	}
}

// New initializes a new color changer Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.DiscardHandler)
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithTimeouts(eng.timeouts),
	}
	if eng.tokens != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithTokenSource(eng.tokens))
	}
	eng.runtime = runtime.NewEngine(runtimeOpts...)

	sessOpts := append([]session.Option{session.WithLogger(eng.logger)}, eng.sessOpts...)
	eng.manager = session.NewManager(eng.store, sessOpts...)
	return eng
}

// Handle serves one request against a state the caller owns.
// It never fails; unrecoverable requests produce the apology response.
func (e *Engine) Handle(ctx context.Context, sessionID string, state domain.SessionState, req domain.Request) (domain.SessionState, domain.Response) {
	return e.runtime.Handle(ctx, sessionID, state, req)
}

// Turn serves one request against the stored session and persists the outcome.
// Errors only come from the store.
func (e *Engine) Turn(ctx context.Context, sessionID string, req domain.Request) (*session.TurnResult, error) {
	return e.manager.Turn(ctx, sessionID, e.runtime, req)
}

// Manager returns the session manager backing Turn.
func (e *Engine) Manager() *session.Manager {
	return e.manager
}

// Timeouts returns the effective input handler timeouts.
func (e *Engine) Timeouts() Timeouts {
	return e.runtime.Timeouts()
}

// Launch is shorthand for a launch request.
func Launch(requestID string) domain.Request {
	return domain.Request{Kind: domain.RequestLaunch, RequestID: requestID}
}

// SayIntent builds an intent request. Color is only read for the color intent.
func SayIntent(intent domain.Intent, color string) domain.Request {
	return domain.Request{Kind: domain.RequestIntent, Intent: intent, Color: color}
}

// Events builds an input handler event request correlated to token.
func Events(token string, events ...domain.ButtonEvent) domain.Request {
	return domain.Request{Kind: domain.RequestInputHandlerEvent, OriginatingRequestID: token, Events: events}
}
