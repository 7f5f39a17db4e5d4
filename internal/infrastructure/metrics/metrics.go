package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the booking lifecycle and assignment collectors
type Metrics struct {
	BookingsCreated      prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	ProviderAssignments  *prometheus.CounterVec
	AssignmentAttempts   *prometheus.CounterVec
	AssignmentRetries    prometheus.Counter
	AssignmentBackoff    prometheus.Histogram
	ProviderRejections   prometheus.Counter
	ReassignmentFailures prometheus.Counter
	Conflicts            prometheus.Counter
}

// NewMetrics registers the collectors on reg.
// Tests pass a fresh prometheus.NewRegistry() so repeated construction never collides.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_created_total",
			Help: "Total number of bookings created",
		}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Total number of booking status transitions",
		}, []string{"from", "to", "actor_type"}),

		ProviderAssignments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_provider_assignments_total",
			Help: "Total number of providers assigned to bookings",
		}, []string{"assigned_by"}),

		AssignmentAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_assignment_attempts_total",
			Help: "Assignment engine attempts by outcome",
		}, []string{"outcome"}),

		AssignmentRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_assignment_retries_total",
			Help: "Total number of assignment retries",
		}),

		AssignmentBackoff: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "booking_assignment_backoff_seconds",
			Help:    "Backoff delay applied before an assignment retry",
			Buckets: []float64{0.5, 1, 2, 3, 5, 10},
		}),

		ProviderRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_provider_rejections_total",
			Help: "Total number of provider rejections",
		}),

		ReassignmentFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_reassignment_failures_total",
			Help: "Rejections left without a replacement provider",
		}),

		Conflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_update_conflicts_total",
			Help: "Booking updates lost to a concurrent modification",
		}),
	}
}
