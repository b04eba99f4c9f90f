package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weatherdash.app/internal/ports"
)

// DatabaseHealthChecker pings the mock backend's database
type DatabaseHealthChecker struct {
	db *gorm.DB
}

func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		return unhealthy(status, "database instance is nil")
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return unhealthy(status, "failed to get underlying database connection")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	status.Status = "healthy"
	status.Details["dialect"] = d.db.Dialector.Name()
	status.Details["open_connections"] = sqlDB.Stats().OpenConnections
	return status
}

func unhealthy(status ports.HealthStatus, reason string) ports.HealthStatus {
	status.Status = "unhealthy"
	status.Error = reason
	return status
}
