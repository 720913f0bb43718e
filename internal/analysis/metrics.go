package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts ad-hoc screening submissions.
type Metrics struct {
	Submissions *prometheus.CounterVec
}

// NewMetrics registers the submission metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Submissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "amlscope_submissions_total",
			Help: "Ad-hoc screening submissions by outcome",
		}, []string{"outcome"}),
	}
}

// IncrementSubmission records one submission outcome.
func (m *Metrics) IncrementSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}
