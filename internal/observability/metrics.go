package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the prometheus collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	authAttempts    *prometheus.CounterVec
	verifications   *prometheus.CounterVec
	sweptRecords    *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_errors_total",
			Help: "Total number of error responses by error code",
		}, []string{"method", "path", "code"}),
		authAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_auth_attempts_total",
			Help: "Login and registration attempts by outcome",
		}, []string{"action", "outcome"}),
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_phone_verifications_total",
			Help: "Delivery phone verification operations by outcome",
		}, []string{"operation", "outcome"}),
		sweptRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_swept_records_total",
			Help: "Expired records removed by background sweeps",
		}, []string{"kind"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(method, path, code).Inc()
}

// RecordAuth counts a login or registration outcome.
func (m *Metrics) RecordAuth(action, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(action, outcome).Inc()
}

// RecordVerification counts a generate/verify/resend outcome.
func (m *Metrics) RecordVerification(operation, outcome string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(operation, outcome).Inc()
}

// RecordSweep counts records removed by a sweep.
func (m *Metrics) RecordSweep(kind string, removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.sweptRecords.WithLabelValues(kind).Add(float64(removed))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
