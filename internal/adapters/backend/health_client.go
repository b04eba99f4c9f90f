package backend

import (
	"context"
	"net/http"

	"weatherdash.app/internal/core/health"
	"weatherdash.app/internal/ports"
)

type HealthClient struct {
	transport ports.Transport
}

func NewHealthClient(transport ports.Transport) *HealthClient {
	return &HealthClient{transport: transport}
}

// Check is the liveness probe.
func (c *HealthClient) Check(ctx context.Context) (*health.Status, error) {
	var out health.Status
	if err := c.transport.Send(ctx, ports.Request{Method: http.MethodGet, Path: pathHealth}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
