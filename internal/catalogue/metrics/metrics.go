package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the test gallery.
type Metrics struct {
	// Records in the most recently loaded collection
	Records prometheus.Gauge

	// Catalogue loads by outcome ("ok", "error")
	Loads *prometheus.CounterVec

	// Time spent deriving a view (filter + paginate + select)
	ViewLatency prometheus.Histogram

	// Verdicts handed to the detail view by outcome
	Handoffs *prometheus.CounterVec
}

// New registers the gallery metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Records: f.NewGauge(prometheus.GaugeOpts{
			Name: "amlscope_catalogue_records",
			Help: "Number of test cases in the loaded catalogue",
		}),
		Loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "amlscope_catalogue_loads_total",
			Help: "Catalogue loads by outcome",
		}, []string{"outcome"}),
		ViewLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "amlscope_catalogue_view_duration_seconds",
			Help:    "Duration of deriving the gallery view",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		Handoffs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "amlscope_catalogue_handoffs_total",
			Help: "Analyze actions by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveLoad records a load outcome and, on success, the collection size.
func (m *Metrics) ObserveLoad(records int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Loads.WithLabelValues("error").Inc()
		m.Records.Set(0)
		return
	}
	m.Loads.WithLabelValues("ok").Inc()
	m.Records.Set(float64(records))
}

// ObserveViewLatency records how long a view derivation took.
func (m *Metrics) ObserveViewLatency(d time.Duration) {
	if m != nil {
		m.ViewLatency.Observe(d.Seconds())
	}
}

// IncrementHandoff records an Analyze outcome.
func (m *Metrics) IncrementHandoff(outcome string) {
	if m != nil {
		m.Handoffs.WithLabelValues(outcome).Inc()
	}
}
