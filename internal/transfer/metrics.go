package transfer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts handoff operations.
type Metrics struct {
	Operations *prometheus.CounterVec
}

// NewMetrics registers the handoff metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "amlscope_transfer_operations_total",
			Help: "Handoff slot operations by operation and result",
		}, []string{"op", "result"}), // op: put, take; result: ok, miss, error
	}
}

func (m *Metrics) observe(op, result string) {
	if m != nil {
		m.Operations.WithLabelValues(op, result).Inc()
	}
}
