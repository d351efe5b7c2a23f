package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// AuditHooks logs every lifecycle event at Info (Warn for stale, Error for fatal).
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "audit transition",
				"session_id", e.SessionID, "handler", e.Handler, "from", e.From, "to", e.To)
		},
		OnStaleEvent: func(ctx context.Context, e *domain.CorrelationEvent) {
			logger.WarnContext(ctx, "audit stale event",
				"session_id", e.SessionID, "expected", e.Expected, "originating", e.Originating)
		},
		OnDeviceRegistered: func(ctx context.Context, e *domain.DeviceEvent) {
			logger.InfoContext(ctx, "audit device registered",
				"session_id", e.SessionID, "device_id", e.DeviceID, "index", e.Index)
		},
		OnFatal: func(ctx context.Context, e *domain.FatalEvent) {
			logger.ErrorContext(ctx, "audit fatal request", "session_id", e.SessionID, "err", e.Err)
		},
	}
}

// Combine fans every event out to each set of hooks in order. Nil callbacks are skipped.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			for _, h := range all {
				if h.OnTransition != nil {
					h.OnTransition(ctx, e)
				}
			}
		},
		OnStaleEvent: func(ctx context.Context, e *domain.CorrelationEvent) {
			for _, h := range all {
				if h.OnStaleEvent != nil {
					h.OnStaleEvent(ctx, e)
				}
			}
		},
		OnDeviceRegistered: func(ctx context.Context, e *domain.DeviceEvent) {
			for _, h := range all {
				if h.OnDeviceRegistered != nil {
					h.OnDeviceRegistered(ctx, e)
				}
			}
		},
		OnFatal: func(ctx context.Context, e *domain.FatalEvent) {
			for _, h := range all {
				if h.OnFatal != nil {
					h.OnFatal(ctx, e)
				}
			}
		},
	}
}
