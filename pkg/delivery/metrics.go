package delivery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the delivery collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the delivery collectors and registers them with reg.
// A nil registerer leaves them unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mbuzz",
			Subsystem: "delivery",
			Name:      "requests_total",
			Help:      "Tracking API calls by path and outcome.",
		}, []string{"path", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mbuzz",
			Subsystem: "delivery",
			Name:      "duration_seconds",
			Help:      "Tracking API call latency, including short-circuited calls.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"path"}),
	}
}

// Requests exposes the request counter for inspection.
func (m *Metrics) Requests() *prometheus.CounterVec { return m.requests }

// Duration exposes the latency histogram for inspection.
func (m *Metrics) Duration() *prometheus.HistogramVec { return m.duration }

func (m *Metrics) observe(path string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, Outcome(err)).Inc()
	m.duration.WithLabelValues(path).Observe(elapsed.Seconds())
}
