package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics observes calls to the screening service.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics registers the client metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "amlscope_screening_requests_total",
			Help: "Calls to the screening service by operation and outcome",
		}, []string{"operation", "outcome"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "amlscope_screening_duration_seconds",
			Help:    "Latency of screening service calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(GetCategory(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	m.Requests.WithLabelValues(operation, outcome).Inc()
	m.Latency.WithLabelValues(operation).Observe(d.Seconds())
}
