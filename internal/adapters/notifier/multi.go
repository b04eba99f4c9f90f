package notifier

import (
	"context"

	"weatherdash.app/internal/ports"
)

// Multi delivers every notice to each notifier in order.
type Multi []ports.Notifier

func NewMulti(notifiers ...ports.Notifier) Multi {
	out := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m Multi) Notify(ctx context.Context, notice ports.Notice) {
	for _, n := range m {
		n.Notify(ctx, notice)
	}
}
