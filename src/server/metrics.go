package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the game endpoints
type Metrics struct {
	targetRequests     *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	submissionDuration prometheus.Histogram
}

// MustNewMetrics registers the collectors with reg and panics on duplicate registration
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		targetRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "drawday",
				Name:      "target_requests_total",
				Help:      "Target lookups by result.",
			},
			[]string{"result"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "drawday",
				Name:      "submissions_total",
				Help:      "Drawing submissions by outcome.",
			},
			[]string{"outcome"},
		),
		submissionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "drawday",
				Name:      "submission_duration_seconds",
				Help:      "Time spent handling a submission, judge call included.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
		),
	}
	reg.MustRegister(m.targetRequests, m.submissions, m.submissionDuration)
	return m
}

func (m *Metrics) targetRequest(result string) {
	if m == nil {
		return
	}
	m.targetRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) submission(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	m.submissionDuration.Observe(elapsed.Seconds())
}
