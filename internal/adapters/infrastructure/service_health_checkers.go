package infrastructure

import (
	"context"

	"weatherdash.app/internal/core/health"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// BackendStatusClient is the health endpoint of the dashboard backend
type BackendStatusClient interface {
	Check(ctx context.Context) (*health.Status, error)
}

// BackendHealthChecker calls the backend's /api/health
type BackendHealthChecker struct {
	client  BackendStatusClient
	baseURL string
}

func NewBackendHealthChecker(client BackendStatusClient, baseURL string) *BackendHealthChecker {
	return &BackendHealthChecker{client: client, baseURL: baseURL}
}

func (b *BackendHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "backend",
		Details:   map[string]interface{}{"base_url": b.baseURL},
	}

	if b.client == nil {
		return unhealthy(status, "backend client is not available")
	}

	res, err := b.client.Check(ctx)
	if err != nil {
		return unhealthy(status, errors.UserMessage(err))
	}
	if !res.OK() {
		return unhealthy(status, "backend reported status "+res.Status)
	}

	status.Status = "healthy"
	status.Details["service"] = res.Service
	status.Details["version"] = res.Version
	return status
}

// Pinger is anything with a liveness probe, such as the Redis notifier
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker reports a component healthy when its Ping succeeds
type PingHealthChecker struct {
	component string
	pinger    Pinger
}

func NewPingHealthChecker(component string, pinger Pinger) *PingHealthChecker {
	return &PingHealthChecker{component: component, pinger: pinger}
}

func (p *PingHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{Component: p.component}

	if p.pinger == nil {
		return unhealthy(status, p.component+" is not available")
	}
	if err := p.pinger.Ping(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	status.Status = "healthy"
	return status
}
