package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeRetried   = "retried"
	OutcomeFailed    = "failed"
	OutcomePermanent = "failed_permanent"
	OutcomeUnknown   = "unknown_job"
)

// Metrics records job processing counters and durations
type Metrics struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics registers the worker metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		processed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "messaging_worker",
				Name:      "jobs_processed_total",
				Help:      "Total number of jobs processed, by job name and outcome.",
			},
			[]string{"job", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "messaging_worker",
				Name:      "job_duration_seconds",
				Help:      "Duration of job handler runs.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job"},
		),
	}
}

func (m *Metrics) observe(job, outcome string, seconds float64) {
	m.processed.WithLabelValues(job, outcome).Inc()
	if outcome != OutcomeUnknown {
		m.duration.WithLabelValues(job).Observe(seconds)
	}
}
