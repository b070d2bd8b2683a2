package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// incident pipeline and the detail cache.
type Metrics struct {
	SourceFetches   *prometheus.CounterVec // labels: source, outcome={success,error}
	SourceIncidents *prometheus.GaugeVec   // labels: source
	CatalogSize     prometheus.Gauge
	Refreshes       *prometheus.CounterVec // labels: outcome={success,fallback,empty}
	RefreshDuration prometheus.Histogram

	DetailCacheLookups *prometheus.CounterVec // labels: result={hit,miss}
	DetailFetches      *prometheus.CounterVec // labels: outcome={success,error}
	DetailCacheEntries prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceFetches,
		m.SourceIncidents,
		m.CatalogSize,
		m.Refreshes,
		m.RefreshDuration,
		m.DetailCacheLookups,
		m.DetailFetches,
		m.DetailCacheEntries,
	)
	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignis",
			Name:      "source_fetches_total",
			Help:      "Source feed fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceIncidents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ignis",
			Name:      "source_incidents",
			Help:      "Raw incidents returned by the last fetch, per source.",
		}, []string{"source"}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ignis",
			Name:      "catalog_size",
			Help:      "Incidents in the currently published catalog.",
		}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignis",
			Name:      "refreshes_total",
			Help:      "Catalog refresh passes by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ignis",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-merge-publish cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		DetailCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignis",
			Name:      "detail_cache_lookups_total",
			Help:      "Detail cache lookups by result.",
		}, []string{"result"}),
		DetailFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignis",
			Name:      "detail_fetches_total",
			Help:      "Detail page fetches by outcome.",
		}, []string{"outcome"}),
		DetailCacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ignis",
			Name:      "detail_cache_entries",
			Help:      "URLs currently held by the detail cache.",
		}),
	}
}
