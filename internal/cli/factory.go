package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/colorchanger"
	"github.com/aretw0/colorchanger/internal/config"
	"github.com/aretw0/colorchanger/pkg/adapters/file"
	"github.com/aretw0/colorchanger/pkg/adapters/memory"
	"github.com/aretw0/colorchanger/pkg/adapters/redis"
	"github.com/aretw0/colorchanger/pkg/adapters/sqlite"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/observability"
	"github.com/aretw0/colorchanger/pkg/ports"
	"github.com/aretw0/colorchanger/pkg/session"
)

// Backend is an opened session store plus whatever it needs released.
type Backend struct {
	Store  ports.SessionStore
	Locker ports.DistributedLocker
	close  []func() error
}

// Close releases the store connections.
func (b *Backend) Close() error {
	var errs []error
	for _, fn := range b.close {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}

// OpenBackend opens the store the configuration selects.
func OpenBackend(cfg config.Store) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return &Backend{Store: memory.NewStore()}, nil
	case config.DriverFile:
		return &Backend{Store: file.New(cfg.Path)}, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store, close: []func() error{store.Close}}, nil
	case config.DriverRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		b := &Backend{Store: store, close: []func() error{store.Close}}
		if cfg.Redis.Lock {
			b.Locker = redis.NewLocker(store.Client(), cfg.Redis.Prefix+"lock:")
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Runtime is the engine wired from configuration.
type Runtime struct {
	Engine   *colorchanger.Engine
	Backend  *Backend
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Close releases the backend.
func (r *Runtime) Close() error {
	return r.Backend.Close()
}

// NewRuntime builds the engine, its store and its metrics from cfg.
// Audit logging is attached when debug is set.
func NewRuntime(cfg config.Config, logger *slog.Logger, debug bool) (*Runtime, error) {
	backend, err := OpenBackend(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	hooks := []domain.LifecycleHooks{metrics.Hooks()}
	if debug {
		hooks = append(hooks, observability.AuditHooks(logger))
	}

	sessOpts := []session.Option{}
	if backend.Locker != nil {
		sessOpts = append(sessOpts, session.WithLocker(backend.Locker))
	}
	if cfg.Store.Redis.LockTTL > 0 {
		sessOpts = append(sessOpts, session.WithLockTTL(cfg.Store.Redis.LockTTL))
	}

	engine := colorchanger.New(
		colorchanger.WithLogger(logger),
		colorchanger.WithStore(backend.Store),
		colorchanger.WithLifecycleHooks(observability.Combine(hooks...)),
		colorchanger.WithTimeouts(colorchanger.Timeouts{
			Launch: cfg.Timeout.Launch,
			Retry:  cfg.Timeout.Retry,
			Play:   cfg.Timeout.Play,
		}),
		colorchanger.WithSessionOptions(sessOpts...),
	)

	return &Runtime{
		Engine:   engine,
		Backend:  backend,
		Metrics:  metrics,
		Registry: reg,
		Logger:   logger,
	}, nil
}
