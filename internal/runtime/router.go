package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// Handle serves one host request against the session state it was delivered with.
// It never fails: errors and panics become the apology response, and the input
// state is returned untouched so nothing half-applied is persisted.
func (e *Engine) Handle(ctx context.Context, sessionID string, state domain.SessionState, req domain.Request) (next domain.SessionState, resp domain.Response) {
	t := &turn{
		ctx:       ctx,
		sessionID: sessionID,
		req:       req,
		resp:      domain.NewResponse(),
	}

	defer func() {
		if r := recover(); r != nil {
			next, resp = e.fatal(t, state, fmt.Errorf("%w: panic: %v", domain.ErrUnexpectedRequest, r))
		}
	}()

	e.logger.Debug("handling request",
		"session_id", sessionID,
		"kind", req.Kind,
		"intent", req.Intent,
		"phase", state.Phase,
	)

	out, err := e.dispatch(t, state.Clone())
	if err != nil {
		return e.fatal(t, state, err)
	}

	e.logger.Info("request handled",
		"session_id", sessionID,
		"handler", t.handler,
		"from", state.Phase,
		"to", out.Phase,
	)
	if e.hooks.OnTransition != nil {
		e.hooks.OnTransition(ctx, &domain.TransitionEvent{
			Timestamp: e.now(),
			SessionID: sessionID,
			Handler:   t.handler,
			From:      state.Phase,
			To:        out.Phase,
		})
	}
	return out, t.resp
}

func (e *Engine) dispatch(t *turn, s domain.SessionState) (domain.SessionState, error) {
	if t.req.Kind == domain.RequestLaunch {
		return e.newSession(t), nil
	}
	if err := s.Validate(); err != nil {
		return s, err
	}

	switch t.req.Kind {
	case domain.RequestSessionEnded:
		return e.sessionEnded(t, s), nil
	case domain.RequestInputHandlerEvent:
		return e.dispatchEvents(t, s)
	case domain.RequestIntent:
		return e.dispatchIntent(t, s), nil
	default:
		return s, fmt.Errorf("%w: request kind %q", domain.ErrUnexpectedRequest, t.req.Kind)
	}
}

// dispatchEvents correlates the delivery, then serves the first event the
// current phase has a handler for.
func (e *Engine) dispatchEvents(t *turn, s domain.SessionState) (domain.SessionState, error) {
	if !Correlate(s, t.req.OriginatingRequestID) {
		return e.rejectStale(t, s), nil
	}

	for _, ev := range t.req.Events {
		switch ev.Name {
		case domain.EventFirstCheckedIn:
			return e.handleFirstCheckIn(t, s, ev)
		case domain.EventSecondCheckedIn:
			return e.handleSecondCheckIn(t, s, ev)
		case domain.EventButtonDown:
			if s.Phase == domain.PhasePlay {
				return e.handleButtonPressed(t, s, ev), nil
			}
		case domain.EventTimeout:
			switch s.Phase {
			case domain.PhasePlay:
				return e.handlePlayTimeout(t, s), nil
			case domain.PhaseRollCall:
				return e.handleRollCallTimeout(t, s), nil
			}
		default:
			return s, fmt.Errorf("%w: %v", domain.ErrUnknownEvent, ev.Name)
		}
	}

	t.handler = "router.ignored_events"
	e.logger.Debug("no event handled", "session_id", t.sessionID, "phase", s.Phase, "events", len(t.req.Events))
	t.resp.Microphone = domain.MicrophoneClosed
	return s, nil
}

func (e *Engine) dispatchIntent(t *turn, s domain.SessionState) domain.SessionState {
	switch t.req.Intent {
	case domain.IntentHelp:
		return e.help(t, s)
	case domain.IntentStop, domain.IntentCancel:
		return e.stop(t, s)
	case domain.IntentYes:
		return e.yes(t, s)
	case domain.IntentNo:
		return e.no(t, s)
	case domain.IntentColor:
		return e.colorIntent(t, s)
	default:
		return e.catchAll(t, s)
	}
}

// colorIntent selects a color in play. After the play timeout a valid color
// resumes play directly; before roll call completes there is nothing to color.
func (e *Engine) colorIntent(t *turn, s domain.SessionState) domain.SessionState {
	switch {
	case s.Phase == domain.PhasePlay:
		return e.selectColor(t, s, t.req.Color)
	case s.Phase == domain.PhaseExit && s.IsRollCallComplete:
		if _, ok := domain.ParseColor(t.req.Color); ok {
			s.Phase = domain.PhasePlay
			s.ExpectingEndSkillConfirmation = false
		}
		return e.selectColor(t, s, t.req.Color)
	default:
		return e.help(t, s)
	}
}

// fatal builds the apology response and reports err. The original state is returned.
func (e *Engine) fatal(t *turn, original domain.SessionState, err error) (domain.SessionState, domain.Response) {
	e.logger.Error("request failed", "session_id", t.sessionID, "kind", t.req.Kind, "err", err)
	if e.hooks.OnFatal != nil {
		e.hooks.OnFatal(t.ctx, &domain.FatalEvent{
			Timestamp: e.now(),
			SessionID: t.sessionID,
			Err:       err,
		})
	}
	resp := domain.NewResponse()
	resp.Say(speechFatal)
	resp.EndSession = true
	return original, resp
}
