package transport

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

func TestNotifyingTransport_SuccessNeverNotifies(t *testing.T) {
	next := mocks.NewTransport(t)
	notifier := mocks.NewNotifier(t)
	next.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := NewNotifyingTransport(next, notifier).Send(context.Background(), ports.Request{Method: http.MethodGet, Path: "/api/health"}, nil)

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestNotifyingTransport_OneNoticePerFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
		wantMsg  string
	}{
		{name: "Application", err: errors.NewApplicationError(1, "city not found"), wantKind: "application", wantMsg: "city not found"},
		{name: "Server", err: errors.NewServerError(500, ""), wantKind: "server", wantMsg: errors.MessageServerError},
		{name: "Network", err: errors.NewNetworkError(fmt.Errorf("connection refused")), wantKind: "network", wantMsg: errors.MessageNetworkError},
		{name: "Client", err: errors.NewClientError(nil), wantKind: "client", wantMsg: errors.MessageRequestFailed},
		{name: "UnclassifiedBecomesClient", err: fmt.Errorf("boom"), wantKind: "client", wantMsg: errors.MessageRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := mocks.NewTransport(t)
			notifier := mocks.NewNotifier(t)
			next.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(tt.err)

			var notice ports.Notice
			notifier.EXPECT().Notify(mock.Anything, mock.Anything).
				Run(func(ctx context.Context, n ports.Notice) { notice = n }).
				Return().
				Once()

			err := NewNotifyingTransport(next, notifier).Send(context.Background(), ports.Request{Method: http.MethodGet, Path: "/api/weather/current"}, nil)

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, errors.UserMessage(err))
			assert.Equal(t, tt.wantKind, notice.Kind)
			assert.Equal(t, tt.wantMsg, notice.Message)
			assert.Equal(t, http.MethodGet, notice.Method)
			assert.Equal(t, "/api/weather/current", notice.Path)
			assert.NotEmpty(t, notice.RequestID)
			assert.False(t, notice.At.IsZero())
		})
	}
}

func TestNotifyingTransport_PassesRequestIDDown(t *testing.T) {
	next := mocks.NewTransport(t)
	notifier := mocks.NewNotifier(t)

	var forwarded string
	next.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).
		Run(func(ctx context.Context, req ports.Request, out interface{}) { forwarded = req.RequestID }).
		Return(errors.NewNetworkError(nil))

	var notified string
	notifier.EXPECT().Notify(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, n ports.Notice) { notified = n.RequestID }).
		Return()

	_ = NewNotifyingTransport(next, notifier).Send(context.Background(), ports.Request{Path: "/api/health"}, nil)

	assert.NotEmpty(t, forwarded)
	assert.Equal(t, forwarded, notified)
}

func TestLoggingTransport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		next := mocks.NewTransport(t)
		logger := mocks.NewLogger(t)
		next.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil)
		logger.EXPECT().Debug("Backend request started", mock.Anything).Once()
		logger.EXPECT().Info("Backend request completed", mock.Anything).Once()

		err := NewLoggingTransport(next, logger).Send(context.Background(), ports.Request{Path: "/api/health"}, nil)
		assert.NoError(t, err)
	})

	t.Run("Failure", func(t *testing.T) {
		next := mocks.NewTransport(t)
		logger := mocks.NewLogger(t)
		want := errors.NewServerError(503, "")
		next.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(want)
		logger.EXPECT().Debug("Backend request started", mock.Anything).Once()
		logger.EXPECT().Error("Backend request failed", mock.Anything).Once()

		err := NewLoggingTransport(next, logger).Send(context.Background(), ports.Request{Path: "/api/health"}, nil)
		assert.Equal(t, want, err)
	})
}

func TestMetricsTransport(t *testing.T) {
	next := mocks.NewTransport(t)
	metrics := mocks.NewTransportMetrics(t)
	next.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(errors.NewNetworkError(nil)).Once()
	next.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	metrics.EXPECT().RecordRequest(http.MethodGet, "/api/health", "network", mock.Anything).Once()
	metrics.EXPECT().RecordRequest(http.MethodGet, "/api/health", "success", mock.Anything).Once()

	tr := NewMetricsTransport(next, metrics)
	req := ports.Request{Method: http.MethodGet, Path: "/api/health"}

	assert.Error(t, tr.Send(context.Background(), req, nil))
	assert.NoError(t, tr.Send(context.Background(), req, nil))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", Outcome(nil))
	assert.Equal(t, "application", Outcome(errors.NewInvalidDataError(nil)))
	assert.Equal(t, "client", Outcome(fmt.Errorf("plain")))
	assert.Equal(t, "client", Outcome(errors.NewValidationError("x")))
}
