package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service's collectors. Build one per process and
// register it on the registry served at /metrics.
type Metrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Fetches       *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	Records       *prometheus.GaugeVec
	ViewCache     *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txdash_http_requests_total",
				Help: "HTTP requests by method and status code",
			},
			[]string{"method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txdash_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txdash_fetch_total",
				Help: "Collection fetches by resource and outcome",
			},
			[]string{"resource", "outcome"}, // customers|transactions , ok|error
		),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txdash_fetch_duration_seconds",
				Help:    "Collection fetch latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
		Records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "txdash_records_loaded",
				Help: "Records held in the dashboard session",
			},
			[]string{"resource"},
		),
		ViewCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txdash_view_cache_total",
				Help: "Derived view lookups by result",
			},
			[]string{"result"}, // hit|miss
		),
	}
}

func (m *Metrics) MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.Fetches,
		m.FetchDuration,
		m.Records,
		m.ViewCache,
	)
}

// ObserveFetch records one collection fetch.
func (m *Metrics) ObserveFetch(resource string, took time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Fetches.WithLabelValues(resource, outcome).Inc()
	m.FetchDuration.WithLabelValues(resource).Observe(took.Seconds())
}

// SetRecords publishes the loaded list sizes.
func (m *Metrics) SetRecords(customers, transactions int) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues("customers").Set(float64(customers))
	m.Records.WithLabelValues("transactions").Set(float64(transactions))
}

// ObserveView counts a view cache lookup.
func (m *Metrics) ObserveView(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.ViewCache.WithLabelValues("hit").Inc()
		return
	}
	m.ViewCache.WithLabelValues("miss").Inc()
}
