package infrastructure

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdash.app/pkg/errors"
)

// MetricsCollector records backend call metrics in Prometheus
type MetricsCollector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsCollector registers the transport metrics on registry.
// A nil registry gets a fresh one.
func NewMetricsCollector(registry *prometheus.Registry) (*MetricsCollector, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &MetricsCollector{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherdash_api_requests_total",
			Help: "Backend calls by method, path and outcome.",
		}, []string{"method", "path", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherdash_api_request_duration_seconds",
			Help:    "Backend call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := registry.Register(c); err != nil {
			return nil, errors.NewConfigurationError("failed to register metrics", err)
		}
	}

	return m, nil
}

// RecordRequest implements ports.TransportMetrics
func (m *MetricsCollector) RecordRequest(method, path, outcome string, duration time.Duration) {
	m.requests.WithLabelValues(method, path, outcome).Inc()
	m.duration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}
