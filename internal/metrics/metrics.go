package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrorsClassified tracks classified errors by type
	ErrorsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_errors_classified_total",
			Help: "Total number of errors classified",
		},
		[]string{"error_type"},
	)

	// RecoveryAttempts tracks recovery attempts per strategy and outcome
	RecoveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_recovery_attempts_total",
			Help: "Total number of recovery strategy attempts",
		},
		[]string{"strategy", "outcome"},
	)

	// DecisionsTotal tracks decisions per aggregation rule
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_decisions_total",
			Help: "Total number of decision requests processed",
		},
		[]string{"rule"},
	)

	// DecisionLatency tracks decision computation latency
	DecisionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_decision_latency_seconds",
			Help:    "Decision computation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"rule"},
	)

	// ProviderCalls tracks external provider calls per provider and outcome
	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_provider_calls_total",
			Help: "Total number of external provider calls",
		},
		[]string{"provider", "outcome"},
	)
)
