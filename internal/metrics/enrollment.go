package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"eventsplatform/internal/domain"
)

// EnrollmentOutcomes counts enroll and unenroll attempts by result.
var EnrollmentOutcomes = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollment_outcomes_total",
		Help:      "Enrollment lifecycle attempts by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// RecordEnrollment classifies err and increments EnrollmentOutcomes.
func RecordEnrollment(operation string, err error) {
	EnrollmentOutcomes.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome maps an enrollment error to a bounded label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	default:
		return "error"
	}
}
