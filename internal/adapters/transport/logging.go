package transport

import (
	"context"
	"time"

	"weatherdash.app/internal/ports"
)

// LoggingTransport decorates a transport with structured logging
type LoggingTransport struct {
	next   ports.Transport
	logger ports.Logger
}

// NewLoggingTransport creates a new logging decorator for a transport
func NewLoggingTransport(next ports.Transport, logger ports.Logger) *LoggingTransport {
	return &LoggingTransport{next: next, logger: logger}
}

// Send wraps the call with structured logging
func (d *LoggingTransport) Send(ctx context.Context, req ports.Request, out interface{}) error {
	ensureRequestID(&req)

	d.logger.Debug("Backend request started",
		ports.F("method", req.Method),
		ports.F("path", req.Path),
		ports.F("request_id", req.RequestID),
		ports.F("event", "request"))

	startTime := time.Now()
	err := d.next.Send(ctx, req, out)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Backend request failed",
			ports.F("method", req.Method),
			ports.F("path", req.Path),
			ports.F("request_id", req.RequestID),
			ports.F("event", "error"),
			ports.F("kind", Outcome(err)),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return err
	}

	d.logger.Info("Backend request completed",
		ports.F("method", req.Method),
		ports.F("path", req.Path),
		ports.F("request_id", req.RequestID),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()))
	return nil
}
