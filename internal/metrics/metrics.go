package metrics

import (
	"runtime"
	"time"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banking_portal"

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Business Metrics
	TransactionsTotal   *prometheus.CounterVec
	TransactionDuration *prometheus.HistogramVec
	BalanceQueriesTotal *prometheus.CounterVec
	BalanceDuration     prometheus.Histogram

	// Endpoint Metrics
	EndpointResolutionsTotal   *prometheus.CounterVec
	EndpointResolutionDuration *prometheus.HistogramVec
	EndpointPhase              *prometheus.GaugeVec
	TransactionsInFlight       *prometheus.GaugeVec

	// System Metrics
	ServiceUptime    prometheus.Gauge
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec

	// Validation Metrics
	ValidationErrors *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
		HTTPResponseSizeBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "Size of HTTP responses in bytes",
				Buckets:   []float64{100, 1000, 10_000, 100_000, 1_000_000},
			},
			[]string{"method", "path", "status_code"},
		),

		TransactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Total number of submitted transactions by outcome",
			},
			[]string{"kind", "outcome"},
		),
		TransactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_duration_seconds",
				Help:      "Round trip time of transaction submissions",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		BalanceQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "balance_queries_total",
				Help:      "Total number of balance queries by outcome",
			},
			[]string{"outcome"},
		),
		BalanceDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "balance_query_duration_seconds",
				Help:      "Round trip time of balance queries",
				Buckets:   prometheus.DefBuckets,
			},
		),

		EndpointResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "endpoint_resolutions_total",
				Help:      "Total number of banking endpoint resolution attempts",
			},
			[]string{"source", "outcome"},
		),
		EndpointResolutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "endpoint_resolution_duration_seconds",
				Help:      "Duration of banking endpoint resolution",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"source"},
		),

		EndpointPhase: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "endpoint_phase",
				Help:      "Current endpoint resolver phase, 1 for the active phase",
			},
			[]string{"phase"},
		),
		TransactionsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "transactions_in_flight",
				Help:      "1 while a submission of the kind is loading",
			},
			[]string{"kind"},
		),

		ServiceUptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "service_uptime_seconds",
				Help:      "Service uptime in seconds",
			},
		),
		Goroutines: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "goroutines",
				Help:      "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "memory_usage_bytes",
				Help:      "Memory usage in bytes",
			},
			[]string{"type"},
		),

		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Total number of rejected portal form fields",
			},
			[]string{"field", "tag"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, path, statusCode).Observe(float64(responseSize))
}

func (m *Metrics) RecordTransaction(kind, outcome string, duration time.Duration) {
	m.TransactionsTotal.WithLabelValues(kind, outcome).Inc()
	m.TransactionDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *Metrics) RecordBalanceQuery(outcome string, duration time.Duration) {
	m.BalanceQueriesTotal.WithLabelValues(outcome).Inc()
	m.BalanceDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordEndpointResolution(source string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.EndpointResolutionsTotal.WithLabelValues(source, outcome).Inc()
	m.EndpointResolutionDuration.WithLabelValues(source).Observe(duration.Seconds())
}

var phases = []endpoint.Phase{
	endpoint.PhaseUninitialized,
	endpoint.PhaseResolving,
	endpoint.PhaseReady,
	endpoint.PhaseFailed,
}

func (m *Metrics) SetEndpointPhase(current endpoint.Phase) {
	for _, phase := range phases {
		value := 0.0
		if phase == current {
			value = 1
		}
		m.EndpointPhase.WithLabelValues(phase.String()).Set(value)
	}
}

func (m *Metrics) SetTransactionInFlight(kind string, inFlight bool) {
	value := 0.0
	if inFlight {
		value = 1
	}
	m.TransactionsInFlight.WithLabelValues(kind).Set(value)
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
}
