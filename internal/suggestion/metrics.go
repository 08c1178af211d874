package suggestion

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Metrics records provider attempts and final suggestion sources.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
	results  *prometheus.CounterVec
}

// NewMetrics registers the suggestion collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sprintsync",
			Subsystem: "suggestion",
			Name:      "provider_attempts_total",
			Help:      "Suggestion provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sprintsync",
			Subsystem: "suggestion",
			Name:      "provider_duration_seconds",
			Help:      "Latency of suggestion provider calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sprintsync",
			Subsystem: "suggestion",
			Name:      "results_total",
			Help:      "Suggestions returned, by source.",
		}, []string{"source"}),
	}

	reg.MustRegister(m.attempts, m.duration, m.results)
	return m
}

func (m *Metrics) observeAttempt(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(provider, outcome).Inc()
	m.duration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) observeResult(source string) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(source).Inc()
}
