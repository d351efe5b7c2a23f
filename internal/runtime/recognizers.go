package runtime

import (
	"time"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// Device proxies the roll call registration binds in press order.
const (
	proxyFirst  = "first_button"
	proxySecond = "second_button"
)

// rollCallHandler listens for two distinct check-ins. The fuzzy second pattern
// may report either or both proxies, which is why the second check-in handler
// has to resolve which device is new.
func rollCallHandler(token string, timeout time.Duration) *domain.InputHandler {
	return &domain.InputHandler{
		Token:         token,
		TimeoutMS:     ms(timeout),
		DeviceProxies: []string{proxyFirst, proxySecond},
		Recognizers: map[string]domain.Recognizer{
			"roll_call_first_button_recognizer": {
				Anchor: "end",
				Fuzzy:  false,
				Pattern: []domain.PatternStep{
					{GadgetIDs: []string{proxyFirst}, Action: domain.ActionDown},
				},
			},
			"roll_call_second_button_recognizer": {
				Anchor: "end",
				Fuzzy:  true,
				Pattern: []domain.PatternStep{
					{GadgetIDs: []string{proxyFirst}, Action: domain.ActionDown},
					{GadgetIDs: []string{proxySecond}, Action: domain.ActionDown},
				},
			},
		},
		Events: map[string]domain.EventSpec{
			domain.EventFirstCheckedIn.String(): {
				TriggerRecognizers: []string{"roll_call_first_button_recognizer"},
				ReportingMode:      domain.ReportMatches,
				EndsHandler:        false,
				MaxInvocations:     1,
			},
			domain.EventSecondCheckedIn.String(): {
				TriggerRecognizers: []string{"roll_call_second_button_recognizer"},
				ReportingMode:      domain.ReportMatches,
				EndsHandler:        true,
				MaxInvocations:     1,
			},
			domain.EventTimeout.String(): {
				TriggerRecognizers: []string{domain.RecognizerTimedOut},
				ReportingMode:      domain.ReportHistory,
				EndsHandler:        true,
			},
		},
	}
}

// playHandler reports every press until the timeout.
func playHandler(token string, timeout time.Duration) *domain.InputHandler {
	return &domain.InputHandler{
		Token:         token,
		TimeoutMS:     ms(timeout),
		DeviceProxies: []string{},
		Recognizers: map[string]domain.Recognizer{
			"button_down_recognizer": {
				Anchor: "end",
				Fuzzy:  false,
				Pattern: []domain.PatternStep{
					{Action: domain.ActionDown},
				},
			},
		},
		Events: map[string]domain.EventSpec{
			domain.EventButtonDown.String(): {
				TriggerRecognizers: []string{"button_down_recognizer"},
				ReportingMode:      domain.ReportMatches,
				EndsHandler:        false,
			},
			domain.EventTimeout.String(): {
				TriggerRecognizers: []string{domain.RecognizerTimedOut},
				ReportingMode:      domain.ReportHistory,
				EndsHandler:        true,
			},
		},
	}
}
