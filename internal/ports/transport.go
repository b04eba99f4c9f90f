package ports

import (
	"context"
	"net/url"
)

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Params url.Values
	// Body is sent as JSON. Struct bodies are validated before dispatch.
	Body interface{}
	// Input is validated before dispatch and never sent.
	Input interface{}
	// RequestID is assigned by the first transport layer that sees the request.
	RequestID string
}

// Transport performs a call against the envelope backend.
// On success the envelope's data is decoded into out; callers never see the envelope.
// Every failure is an *errors.AppError of kind application, server, network or client.
type Transport interface {
	Send(ctx context.Context, req Request, out interface{}) error
}
