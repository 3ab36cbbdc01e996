package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-operation counters and latencies.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskdesk",
			Name:      "operations_total",
			Help:      "Facade operations by name and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taskdesk",
			Name:      "operation_duration_seconds",
			Help:      "Facade operation latency including simulated delay.",
			Buckets:   []float64{.001, .01, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.duration)
	}
	return m
}

func (m *Metrics) observe(op string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// OperationCount returns the counter for op and result, for tests and diagnostics.
func (m *Metrics) OperationCount(op, result string) prometheus.Counter {
	return m.operations.WithLabelValues(op, result)
}
