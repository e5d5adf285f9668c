package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	connected    prometheus.Gauge
	dataAge      prometheus.Gauge
	activeScene  prometheus.Gauge
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallboard_snapshot_fetches_total",
				Help: "Total number of snapshot fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wallboard_snapshot_fetch_duration_seconds",
				Help:    "Duration of snapshot fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		connected: f.NewGauge(prometheus.GaugeOpts{
			Name: "wallboard_connected",
			Help: "1 when the last applied fetch succeeded",
		}),
		dataAge: f.NewGauge(prometheus.GaugeOpts{
			Name: "wallboard_data_age_seconds",
			Help: "Seconds since the last successful fetch",
		}),
		activeScene: f.NewGauge(prometheus.GaugeOpts{
			Name: "wallboard_active_scene",
			Help: "Index of the scene currently shown",
		}),
	}
}

// RecordFetch records a completed fetch attempt.
func (r *Recorder) RecordFetch(outcome string, seconds float64) {
	r.fetchesTotal.WithLabelValues(outcome).Inc()
	r.fetchLatency.WithLabelValues(outcome).Observe(seconds)
}

func (r *Recorder) RecordConnection(connected bool) {
	if connected {
		r.connected.Set(1)
		return
	}
	r.connected.Set(0)
}

func (r *Recorder) RecordDataAge(seconds float64) {
	r.dataAge.Set(seconds)
}

func (r *Recorder) RecordActiveScene(index int) {
	r.activeScene.Set(float64(index))
}
