package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// Metrics holds the engine collectors.
type Metrics struct {
	transitions *prometheus.CounterVec
	stale       prometheus.Counter
	devices     prometheus.Counter
	fatals      prometheus.Counter
	turns       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "colorchanger_transitions_total",
				Help: "Handled requests by controller and phase change",
			},
			[]string{"handler", "from", "to"},
		),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colorchanger_stale_events_total",
			Help: "Input handler events dropped for a stale correlation token",
		}),
		devices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colorchanger_devices_registered_total",
			Help: "Buttons registered during roll call",
		}),
		fatals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colorchanger_fatal_requests_total",
			Help: "Requests answered with the apology response",
		}),
		turns: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "colorchanger_turn_duration_seconds",
				Help:    "Duration of a full turn including persistence",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.transitions, m.stale, m.devices, m.fatals, m.turns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(e.Handler, string(e.From), string(e.To)).Inc()
		},
		OnStaleEvent: func(context.Context, *domain.CorrelationEvent) {
			m.stale.Inc()
		},
		OnDeviceRegistered: func(context.Context, *domain.DeviceEvent) {
			m.devices.Inc()
		},
		OnFatal: func(context.Context, *domain.FatalEvent) {
			m.fatals.Inc()
		},
	}
}

// ObserveTurn records how long a turn of the given request kind took.
func (m *Metrics) ObserveTurn(kind domain.RequestKind, d time.Duration) {
	m.turns.WithLabelValues(string(kind)).Observe(d.Seconds())
}
