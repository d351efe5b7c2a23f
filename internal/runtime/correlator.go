package runtime

import "github.com/aretw0/colorchanger/pkg/domain"

// Correlate reports whether events carrying originating belong to the
// registration the session armed last. Anything else is stale.
func Correlate(s domain.SessionState, originating string) bool {
	return s.CurrentInputHandlerID != "" && originating == s.CurrentInputHandlerID
}

// rejectStale answers a stale delivery: nothing is said, nothing changes,
// and the session keeps waiting for presses from the live registration.
func (e *Engine) rejectStale(t *turn, s domain.SessionState) domain.SessionState {
	t.handler = "correlator.stale"
	e.logger.Warn("stale input received",
		"session_id", t.sessionID,
		"originating", t.req.OriginatingRequestID,
		"expected", s.CurrentInputHandlerID,
	)
	if e.hooks.OnStaleEvent != nil {
		e.hooks.OnStaleEvent(t.ctx, &domain.CorrelationEvent{
			Timestamp:   e.now(),
			SessionID:   t.sessionID,
			Expected:    s.CurrentInputHandlerID,
			Originating: t.req.OriginatingRequestID,
		})
	}
	t.resp.Microphone = domain.MicrophoneClosed
	return s
}

// supersede stops the registration a new one is about to replace.
func (e *Engine) supersede(t *turn, s domain.SessionState) {
	if !s.HasInputHandler() {
		return
	}
	t.resp.Stop = &domain.StopInputHandler{Token: s.CurrentInputHandlerID}
}
