// Package metrics defines the Prometheus instrumentation for the
// moderation pipeline. All collectors are registered on the default
// registry at init time and exposed via promhttp on the metrics port.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal counts routed messages by final priority.
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorguard_classifications_total",
			Help: "Number of messages routed, labeled by priority.",
		},
		[]string{"priority"},
	)

	// SafetyInterventionsTotal counts scripted safety short-circuits.
	SafetyInterventionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorguard_safety_interventions_total",
			Help: "Number of scripted safety interventions, labeled by kind.",
		},
		[]string{"kind"},
	)

	// ValidatorRejectionsTotal counts forbidden-pattern hits on either
	// side of the model call.
	ValidatorRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorguard_validator_rejections_total",
			Help: "Number of forbidden-pattern rejections, labeled by direction (input|output).",
		},
		[]string{"direction"},
	)

	// LLMRequestsTotal counts upstream completion calls by outcome.
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorguard_llm_requests_total",
			Help: "Number of upstream completion requests, labeled by outcome (success|error).",
		},
		[]string{"outcome"},
	)

	// LLMRetriesTotal counts individual retry attempts against the backend.
	LLMRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorguard_llm_retries_total",
			Help: "Number of retried upstream completion attempts.",
		},
	)

	respondDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tutorguard_respond_duration_seconds",
			Help:    "End-to-end latency of a single respond turn.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordClassification records the routed priority for one message.
func RecordClassification(priority string) {
	ClassificationsTotal.WithLabelValues(priority).Inc()
}

// RecordSafetyIntervention records a scripted safety short-circuit.
func RecordSafetyIntervention(kind string) {
	SafetyInterventionsTotal.WithLabelValues(kind).Inc()
}

// RecordValidatorRejection records a forbidden-pattern hit.
func RecordValidatorRejection(direction string) {
	ValidatorRejectionsTotal.WithLabelValues(direction).Inc()
}

// RecordLLMRequest records the outcome of one upstream completion call.
func RecordLLMRequest(outcome string) {
	LLMRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordLLMRetry records one retried upstream attempt.
func RecordLLMRetry() {
	LLMRetriesTotal.Inc()
}

// RecordRespondDuration records the wall time of one respond turn.
func RecordRespondDuration(d time.Duration) {
	respondDuration.Observe(d.Seconds())
}
