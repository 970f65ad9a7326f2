package telemetry

import "taskapp/internal/core/domain"

const OutcomeSuccess = "success"

// Outcome is the metric label for the result of a use-case call.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	return domain.KindOf(err).String()
}
