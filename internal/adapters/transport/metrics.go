package transport

import (
	"context"
	"time"

	"weatherdash.app/internal/ports"
)

// MetricsTransport records the outcome and latency of every call
type MetricsTransport struct {
	next    ports.Transport
	metrics ports.TransportMetrics
}

func NewMetricsTransport(next ports.Transport, metrics ports.TransportMetrics) *MetricsTransport {
	return &MetricsTransport{next: next, metrics: metrics}
}

func (m *MetricsTransport) Send(ctx context.Context, req ports.Request, out interface{}) error {
	start := time.Now()
	err := m.next.Send(ctx, req, out)
	m.metrics.RecordRequest(req.Method, req.Path, Outcome(err), time.Since(start))
	return err
}
