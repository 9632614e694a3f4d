package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// AI turn outcomes
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "turns_total",
			Help:      "Total AI turns by outcome",
		},
		[]string{"outcome"},
	)

	// Token counters
	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "tokens_total",
			Help:      "Total tokens reported by the provider",
		},
		[]string{"model"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"error_type"},
	)
)

// Turn outcome label values.
const (
	TurnOutcomeSuccess  = "success"
	TurnOutcomeFallback = "fallback"
	TurnOutcomeError    = "error"
)

// RecordRequest records one completed HTTP request.
func RecordRequest(method, endpoint, status string, durationSeconds float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}

// RecordTurn records one AI turn outcome, with token usage when the
// provider reported it.
func RecordTurn(outcome, model string, tokens int) {
	TurnsTotal.WithLabelValues(outcome).Inc()
	if tokens > 0 {
		TokensTotal.WithLabelValues(model).Add(float64(tokens))
	}
}
