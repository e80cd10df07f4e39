// Package metrics defines the Prometheus collectors for gateway operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation outcomes used as the status label
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// Redirect recovery outcomes
const (
	RecoveryRecovered    = "recovered"
	RecoveryFailed       = "failed"
	RecoveryNoRegion     = "no_region"
	RecoveryRebuildError = "rebuild_error"
)

// Metrics holds collectors on a private registry so several gateways (and
// tests) can coexist in one process. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	recoveries *prometheus.CounterVec
	timeouts   *prometheus.CounterVec
	requests   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossgate_operations_total",
				Help: "Storage operations by operation, provider and outcome",
			},
			[]string{"operation", "provider", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ossgate_operation_duration_seconds",
				Help:    "Storage operation latency in seconds, retries included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "provider"},
		),
		recoveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossgate_redirect_recoveries_total",
				Help: "Redirect recovery attempts by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		timeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossgate_timeouts_total",
				Help: "Operation attempts that hit their deadline",
			},
			[]string{"operation", "provider"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ossgate_http_requests_total",
				Help: "HTTP requests served by route and status",
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		m.operations,
		m.duration,
		m.recoveries,
		m.timeouts,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveOperation(operation, provider, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, provider, status).Inc()
	m.duration.WithLabelValues(operation, provider).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRecovery(provider, outcome string) {
	if m == nil {
		return
	}
	m.recoveries.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveTimeout(operation, provider string) {
	if m == nil {
		return
	}
	m.timeouts.WithLabelValues(operation, provider).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, http.StatusText(status)).Inc()
}

// Exposes the private registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
