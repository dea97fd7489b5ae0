package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard service.
type Metrics struct {
	// Query metrics.
	Queries         *prometheus.CounterVec   // labels: query={map,depth_bar,depth_scatter,top_countries}
	QueryDuration   *prometheus.HistogramVec // labels: query
	QueryResultSize *prometheus.HistogramVec // labels: query

	// Dataset loading metrics.
	DatasetRecords      prometheus.Gauge
	DatasetReady        prometheus.Gauge
	DatasetLoadDuration prometheus.Gauge
	ExtractFailures     prometheus.Counter
	RowsSkipped         prometheus.Counter
	CountriesBackfilled prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "queries_total",
			Help:      "Chart queries served, by query.",
		}, []string{"query"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "query_duration_seconds",
			Help:      "Time to filter and aggregate one chart query.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"query"}),
		QueryResultSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "query_result_size",
			Help:      "Points, cells, or slices returned by a chart query.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 250, 500, 1000},
		}, []string{"query"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_records",
			Help:      "Earthquake records in the loaded table.",
		}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_ready",
			Help:      "1 once the table is loaded, 0 before.",
		}),
		DatasetLoadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of the successful extract-transform-load of the table.",
		}),
		ExtractFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_extract_failures_total",
			Help:      "Failed attempts to read the dataset source.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_rows_skipped_total",
			Help:      "Source rows dropped because they failed to parse.",
		}),
		CountriesBackfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_countries_backfilled_total",
			Help:      "Records whose missing country was filled by reverse geocoding.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "geocode_enabled",
			Help:      "1 when country backfill is enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Queries,
		m.QueryDuration,
		m.QueryResultSize,
		m.DatasetRecords,
		m.DatasetReady,
		m.DatasetLoadDuration,
		m.ExtractFailures,
		m.RowsSkipped,
		m.CountriesBackfilled,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	}
}
