package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rshade/pkindex/internal/dashboard"
)

// Metrics holds the Prometheus collectors of one server.
type Metrics struct {
	PageLoads    *prometheus.CounterVec
	LoadDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics registers the collectors on a private registry so several
// servers can coexist in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		PageLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pkindex_page_loads_total",
			Help: "History loads by outcome (ready, empty, error)",
		}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pkindex_load_duration_seconds",
			Help:    "Time to fetch and render the history for one request",
			Buckets: prometheus.DefBuckets,
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.PageLoads,
		m.LoadDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one page load.
func (m *Metrics) Observe(state dashboard.State, d time.Duration) {
	m.PageLoads.WithLabelValues(string(state)).Inc()
	m.LoadDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
