package ports

import (
	"context"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// SessionEngine is the stateless core adapters drive.
// It receives the session state with each request and returns the next one;
// persisting it is the caller's job.
type SessionEngine interface {
	Handle(ctx context.Context, sessionID string, state domain.SessionState, req domain.Request) (domain.SessionState, domain.Response)
}
