package infrastructure

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/health"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

type stubStatusClient struct {
	mock.Mock
}

func (s *stubStatusClient) Check(ctx context.Context) (*health.Status, error) {
	args := s.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*health.Status), args.Error(1)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestDatabaseHealthChecker(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	status := NewDatabaseHealthChecker(db).Check(context.Background())
	assert.True(t, status.Healthy())
	assert.Equal(t, "sqlite", status.Details["dialect"])

	status = NewDatabaseHealthChecker(nil).Check(context.Background())
	assert.False(t, status.Healthy())
	assert.Equal(t, "database instance is nil", status.Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	status = NewDatabaseHealthChecker(db).Check(context.Background())
	assert.False(t, status.Healthy())
}

func TestDatabaseHealthChecker_Postgres(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	checker := NewDatabaseHealthChecker(db)

	sqlMock.ExpectPing()
	status := checker.Check(context.Background())
	assert.True(t, status.Healthy())
	assert.Equal(t, "postgres", status.Details["dialect"])

	sqlMock.ExpectPing().WillReturnError(stderrors.New("connection reset by peer"))
	status = checker.Check(context.Background())
	assert.False(t, status.Healthy())
	assert.Equal(t, "connection reset by peer", status.Error)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestBackendHealthChecker(t *testing.T) {
	tests := []struct {
		name    string
		status  *health.Status
		err     error
		healthy bool
		reason  string
	}{
		{name: "OK", status: &health.Status{Status: "ok", Service: "Weather Visualizer API", Version: "1.0.0"}, healthy: true},
		{name: "Degraded", status: &health.Status{Status: "degraded"}, reason: "backend reported status degraded"},
		{name: "Unreachable", err: errors.NewNetworkError(nil), reason: errors.MessageNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubStatusClient{}
			client.On("Check", mock.Anything).Return(tt.status, tt.err)

			status := NewBackendHealthChecker(client, "http://localhost:8080").Check(context.Background())

			assert.Equal(t, tt.healthy, status.Healthy())
			assert.Equal(t, tt.reason, status.Error)
			assert.Equal(t, "http://localhost:8080", status.Details["base_url"])
			if tt.healthy {
				assert.Equal(t, "1.0.0", status.Details["version"])
			}
		})
	}
}

func TestPingHealthChecker(t *testing.T) {
	assert.True(t, NewPingHealthChecker("notifier", stubPinger{}).Check(context.Background()).Healthy())

	status := NewPingHealthChecker("notifier", stubPinger{err: errors.NewExternalAPIError("Redis ping failed", nil)}).Check(context.Background())
	assert.False(t, status.Healthy())
	assert.Contains(t, status.Error, "Redis ping failed")

	assert.False(t, NewPingHealthChecker("notifier", nil).Check(context.Background()).Healthy())
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	backend := mocks.NewHealthChecker(t)
	backend.EXPECT().Check(mock.Anything).Return(ports.HealthStatus{Component: "backend", Status: "healthy"}).Once()

	cfg := &config.Config{}
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.Notifier.Type = config.NotifierTypeSlog

	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		Checkers: map[string]ports.HealthChecker{
			"backend":  backend,
			"notifier": NewPingHealthChecker("notifier", stubPinger{}),
			"skipped":  nil,
		},
		Config: NewConfigDisplayAdapter(cfg),
	})

	results := checker.CheckAll(context.Background())

	assert.Len(t, results, 3)
	assert.True(t, results["backend"].Healthy())
	assert.True(t, results["notifier"].Healthy())
	assert.Equal(t, "http://localhost:8080", results["config"].Details["apiBaseURL"])
	assert.Equal(t, "slog", results["config"].Details["notifier"])
}
