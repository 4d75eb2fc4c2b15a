package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eventia/eventia/events"
)

// Metrics counts refresh activity; registered on the default registry and
// served from /metrics.
type Metrics struct {
	FetchCycles   prometheus.Counter
	FetchFailures *prometheus.CounterVec
	EventsServed  prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		FetchCycles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventia_fetch_cycles_total",
			Help: "Number of fetch cycles started.",
		}),
		FetchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "eventia_fetch_failures_total",
			Help: "Number of per-source fetch failures.",
		}, []string{"source"}),
		EventsServed: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "eventia_aggregated_events",
			Help: "Size of the last aggregated event list.",
		}),
	}
}

func (m *Metrics) OnCycle() {
	m.FetchCycles.Inc()
}

func (m *Metrics) OnFailure(src events.Source) {
	m.FetchFailures.WithLabelValues(string(src)).Inc()
}
