package transport

import (
	"context"
	"time"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// NotifyingTransport reports every failed call to a Notifier, exactly once.
// Successful calls never notify.
type NotifyingTransport struct {
	next     ports.Transport
	notifier ports.Notifier
	now      func() time.Time
}

// NewNotifyingTransport decorates next with user notification
func NewNotifyingTransport(next ports.Transport, notifier ports.Notifier) *NotifyingTransport {
	return &NotifyingTransport{next: next, notifier: notifier, now: time.Now}
}

// Send forwards req and turns a failure into a Notice. Errors that are not
// classified yet are reported and returned as client errors.
func (n *NotifyingTransport) Send(ctx context.Context, req ports.Request, out interface{}) error {
	ensureRequestID(&req)

	err := n.next.Send(ctx, req, out)
	if err == nil {
		return nil
	}

	appErr, ok := errors.As(err)
	if !ok || !appErr.Type.IsTransport() {
		appErr = errors.NewClientError(err)
	}

	n.notifier.Notify(context.WithoutCancel(ctx), ports.Notice{
		Kind:      Kind(appErr.Type),
		Message:   appErr.Message,
		Method:    req.Method,
		Path:      req.Path,
		RequestID: req.RequestID,
		At:        n.now().UTC(),
	})
	return appErr
}

// Kind names a transport error type the way notices and metrics report it.
func Kind(t errors.ErrorType) string {
	switch t {
	case errors.ApplicationError:
		return "application"
	case errors.ServerError:
		return "server"
	case errors.NetworkError:
		return "network"
	case errors.ClientError:
		return "client"
	default:
		return "unknown"
	}
}

// Outcome is "success" for a nil error and the error kind otherwise.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	appErr, ok := errors.As(err)
	if !ok || !appErr.Type.IsTransport() {
		return Kind(errors.ClientError)
	}
	return Kind(appErr.Type)
}
