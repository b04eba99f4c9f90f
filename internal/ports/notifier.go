package ports

import (
	"context"
	"time"
)

// Notice is the user-facing report of one failed backend call.
type Notice struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	RequestID string    `json:"requestId,omitempty"`
	At        time.Time `json:"at"`
}

// Notifier surfaces notices to the user. It decides how, never what.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}
