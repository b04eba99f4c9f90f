package notifier

import (
	"context"

	"weatherdash.app/internal/ports"
)

// SlogNotifier writes user-facing notices to the application log at warn level.
type SlogNotifier struct {
	logger ports.Logger
}

func NewSlogNotifier(logger ports.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(_ context.Context, notice ports.Notice) {
	fields := []ports.Field{
		ports.F("kind", notice.Kind),
		ports.F("method", notice.Method),
		ports.F("path", notice.Path),
		ports.F("at", notice.At),
	}
	if notice.RequestID != "" {
		fields = append(fields, ports.F("request_id", notice.RequestID))
	}
	n.logger.Warn(notice.Message, fields...)
}
