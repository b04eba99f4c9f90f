// Package ports defines the interfaces between the dashboard core and its adapters.
// These interfaces are implemented by adapters and mocked for testing.
//
//go:generate mockery
package ports

// ApplicationPorts aggregates the ports shared by every domain client and use case
type ApplicationPorts struct {
	Transport Transport
	Notifier  Notifier
	Metrics   TransportMetrics
	Logger    Logger
}
