package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/adapters/mockbackend"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
)

// MockBackend serves the dashboard backend contract from a local database
type MockBackend struct {
	db       *gorm.DB
	server   *mockbackend.Server
	dbHealth *infrastructure.DatabaseHealthChecker
	logger   ports.Logger
}

func NewMockBackend(cfg config.MockBackendConfig, logger ports.Logger) (*MockBackend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := mockbackend.OpenDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("open mock backend database: %w", err)
	}

	server, err := mockbackend.NewServer(mockbackend.ServerOptions{
		Port:   cfg.Port,
		Store:  mockbackend.NewRepository(db),
		Logger: logger,
	})
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("create mock backend server: %w", err)
	}

	return &MockBackend{
		db:       db,
		server:   server,
		dbHealth: infrastructure.NewDatabaseHealthChecker(db),
		logger:   logger,
	}, nil
}

// Start checks the database, then serves until Shutdown
func (m *MockBackend) Start(ctx context.Context) error {
	status := m.dbHealth.Check(ctx)
	if !status.Healthy() {
		return fmt.Errorf("mock backend database unhealthy: %s", status.Error)
	}
	m.logger.Info("Mock backend database ready", ports.F("dialect", status.Details["dialect"]))

	return m.server.ListenAndServe()
}

// Health reports the state of the mock backend's database
func (m *MockBackend) Health(ctx context.Context) ports.HealthStatus {
	return m.dbHealth.Check(ctx)
}

func (m *MockBackend) Shutdown(ctx context.Context) error {
	err := m.server.Shutdown(ctx)
	closeDB(m.db)
	if err != nil {
		return fmt.Errorf("shutdown mock backend: %w", err)
	}
	return nil
}

func (m *MockBackend) Server() *mockbackend.Server {
	return m.server
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
