package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PagesFetched     *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	PlantsProcessed  *prometheus.CounterVec
	EmptyFields      *prometheus.CounterVec
	ValidationIssues *prometheus.CounterVec
	QueueDepth       prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every metric with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PagesFetched: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phytocrawl_pages_fetched_total",
			Help: "Pages downloaded, by page type and outcome.",
		}, []string{"page_type", "status"}),
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phytocrawl_fetch_duration_seconds",
			Help:    "Time spent downloading a page, retries and pacing included.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"page_type"}),
		PlantsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phytocrawl_plants_processed_total",
			Help: "Plants handled by the pipeline, by outcome.",
		}, []string{"status"}), // processed, skipped, failed
		EmptyFields: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phytocrawl_empty_fields_total",
			Help: "Fields left empty after extraction.",
		}, []string{"schema", "field"}),
		ValidationIssues: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phytocrawl_validation_issues_total",
			Help: "Suspicious extraction results.",
		}, []string{"schema", "problem"}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "phytocrawl_queue_depth",
			Help: "Plants waiting in the scrape queue.",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}
