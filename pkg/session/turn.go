package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/ports"
)

// TurnResult is the outcome of one request against a stored session.
type TurnResult struct {
	SessionID string              `json:"session_id"`
	State     domain.SessionState `json:"state"`
	Response  domain.Response     `json:"response"`
	Diff      *domain.StateDiff   `json:"diff,omitempty"`
}

// Turn loads the session, runs req through engine and persists the outcome,
// all under the session lock. A session the engine ends is deleted.
// A missing session starts from a fresh roll call state.
func (m *Manager) Turn(ctx context.Context, sessionID string, engine ports.SessionEngine, req domain.Request) (*TurnResult, error) {
	var res *TurnResult
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev := domain.NewSessionState()
		existed := true
		loaded, err := m.store.Load(ctx, sessionID)
		switch {
		case err == nil:
			prev = *loaded
		case errors.Is(err, domain.ErrSessionNotFound):
			existed = false
			if req.Kind != domain.RequestLaunch {
				m.logger.Debug("no stored session, starting fresh", "session_id", sessionID, "kind", req.Kind)
			}
		default:
			return fmt.Errorf("failed to load session: %w", err)
		}

		next, resp := engine.Handle(ctx, sessionID, prev, req)

		var before *domain.SessionState
		if existed {
			before = &prev
		}
		diff := domain.Diff(sessionID, before, &next)

		if resp.EndSession {
			if err := m.store.Delete(ctx, sessionID); err != nil {
				return fmt.Errorf("failed to delete ended session: %w", err)
			}
			if diff == nil {
				diff = &domain.StateDiff{SessionID: sessionID}
			}
			diff.Ended = true
		} else if err := m.store.Save(ctx, sessionID, &next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		res = &TurnResult{
			SessionID: sessionID,
			State:     next,
			Response:  resp,
			Diff:      diff,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
