package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "admissions"

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	IdentityCacheRequests *prometheus.CounterVec
	RecordOperationsTotal *prometheus.CounterVec
}

// New creates a registry with Go and process collectors plus the service metrics
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		IdentityCacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "identity_cache_requests_total",
				Help:      "Identity cache lookups by backend and result",
			},
			[]string{"backend", "result"},
		),
		RecordOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "record_operations_total",
				Help:      "Applicant record operations by kind, operation and outcome",
			},
			[]string{"kind", "operation", "outcome"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.IdentityCacheRequests,
		m.RecordOperationsTotal,
	)
	return m
}

// RegisterPoolGauge exposes a connection pool statistic sampled on scrape
func (m *Metrics) RegisterPoolGauge(name, help string, sample func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Namespace: namespace, Subsystem: "db_pool", Name: name, Help: help},
		sample,
	))
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheResult records one identity cache lookup. Safe on a nil receiver.
func (m *Metrics) CacheResult(backend string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.IdentityCacheRequests.WithLabelValues(backend, result).Inc()
}

// RecordOperation counts one record operation. Safe on a nil receiver.
func (m *Metrics) RecordOperation(kind, operation, outcome string) {
	if m == nil {
		return
	}
	m.RecordOperationsTotal.WithLabelValues(kind, operation, outcome).Inc()
}
