package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the MOS
// decode pipeline and the NOAA fetch adapter.
type Metrics struct {
	BulletinsConsumed prometheus.Counter
	ReportsProduced   prometheus.Counter
	DecodeErrors      prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
	PeriodsPerReport        prometheus.Histogram

	// NOAA fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: report_type, outcome={success,error,empty}
	FetchCache    *prometheus.CounterVec   // labels: report_type, result={hit,miss}
	FetchDuration *prometheus.HistogramVec // labels: report_type
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.BulletinsConsumed,
		m.ReportsProduced,
		m.DecodeErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.PeriodsPerReport,
		m.FetchRequests,
		m.FetchCache,
		m.FetchDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		BulletinsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mos_etl",
			Name:      "bulletins_consumed_total",
			Help:      "Total raw bulletins read from the source topic.",
		}),
		ReportsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mos_etl",
			Name:      "reports_produced_total",
			Help:      "Total decoded reports written to the sink topic.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mos_etl",
			Name:      "decode_errors_total",
			Help:      "Total bulletins that failed to decode.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mos_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mos_etl",
			Name:      "batch_size",
			Help:      "Number of bulletins per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mos_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-decode-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PeriodsPerReport: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mos_etl",
			Name:      "periods_per_report",
			Help:      "Forecast periods decoded per bulletin.",
			Buckets:   []float64{1, 5, 10, 15, 21, 25},
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mos_etl",
			Name:      "fetch_requests_total",
			Help:      "NOAA text product requests by report type and outcome.",
		}, []string{"report_type", "outcome"}),
		FetchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mos_etl",
			Name:      "fetch_cache_total",
			Help:      "Bulletin fetch cache lookups by report type and result.",
		}, []string{"report_type", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mos_etl",
			Name:      "fetch_duration_seconds",
			Help:      "NOAA text product request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"report_type"}),
	}
}
