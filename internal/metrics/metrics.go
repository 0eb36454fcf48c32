// Package metrics defines the Prometheus instrumentation wired into the
// engine and server: counters for each operation, a gauge for the
// uncompacted-bytes backlog, and a latency histogram per request kind.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the engine and server report through.
type Metrics struct {
	Sets        prometheus.Counter
	Gets        prometheus.Counter
	Removes     prometheus.Counter
	Compactions prometheus.Counter
	Uncompacted prometheus.Gauge
	Latency     *prometheus.HistogramVec
}

// IncSets increments the sets counter. Safe to call on a nil *Metrics.
func (m *Metrics) IncSets() {
	if m != nil {
		m.Sets.Inc()
	}
}

// IncGets increments the gets counter. Safe to call on a nil *Metrics.
func (m *Metrics) IncGets() {
	if m != nil {
		m.Gets.Inc()
	}
}

// IncRemoves increments the removes counter. Safe to call on a nil *Metrics.
func (m *Metrics) IncRemoves() {
	if m != nil {
		m.Removes.Inc()
	}
}

// IncCompactions increments the compactions counter. Safe to call on a nil *Metrics.
func (m *Metrics) IncCompactions() {
	if m != nil {
		m.Compactions.Inc()
	}
}

// SetUncompacted reports the current uncompacted-bytes backlog. Safe to
// call on a nil *Metrics.
func (m *Metrics) SetUncompacted(bytes uint64) {
	if m != nil {
		m.Uncompacted.Set(float64(bytes))
	}
}

// ObserveLatency records a request's duration under kind. Safe to call on
// a nil *Metrics.
func (m *Metrics) ObserveLatency(kind string, seconds float64) {
	if m != nil {
		m.Latency.WithLabelValues(kind).Observe(seconds)
	}
}

// New registers and returns a Metrics bound to reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Sets: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ignitekv_sets_total",
			Help: "ignitekv_sets_total counts completed set operations.",
		}),
		Gets: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ignitekv_gets_total",
			Help: "ignitekv_gets_total counts completed get operations.",
		}),
		Removes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ignitekv_removes_total",
			Help: "ignitekv_removes_total counts completed remove operations.",
		}),
		Compactions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ignitekv_compactions_total",
			Help: "ignitekv_compactions_total counts synchronous compaction passes run.",
		}),
		Uncompacted: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "ignitekv_uncompacted_bytes",
			Help: "ignitekv_uncompacted_bytes is the dead-byte backlog since the last compaction.",
		}),
		Latency: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ignitekv_request_duration_seconds",
			Help:    "ignitekv_request_duration_seconds is per-connection-loop request latency by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}
