package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metric names.
const (
	MetricRequestsTotal          = "portal_backend_requests_total"
	MetricRequestDurationSeconds = "portal_backend_request_duration_seconds"
	MetricRetriesTotal           = "portal_backend_retries_total"
)

// Metrics records outbound request counts and latencies. A nil *Metrics is a
// no-op.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

// NewMetrics registers the client metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Requests sent to the sales backend.",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "Latency of requests to the sales backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRetriesTotal,
			Help: "GET requests retried after a transport failure.",
		}, []string{"route"}),
	}
}

func (m *Metrics) observe(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, status).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) retry(route string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(route).Inc()
}
