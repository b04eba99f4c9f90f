package infrastructure

import (
	"context"
	"sync"

	"weatherdash.app/internal/ports"
)

// SystemHealthChecker runs every registered checker concurrently
type SystemHealthChecker struct {
	checkers map[string]ports.HealthChecker
	config   *ConfigDisplayAdapter
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	Checkers map[string]ports.HealthChecker
	Config   *ConfigDisplayAdapter
}

func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker, len(config.Checkers))
	for name, c := range config.Checkers {
		if c != nil {
			checkers[name] = c
		}
	}
	return &SystemHealthChecker{checkers: checkers, config: config.Config}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, checker := range s.checkers {
		wg.Add(1)
		go func(name string, checker ports.HealthChecker) {
			defer wg.Done()
			status := checker.Check(ctx)
			mu.Lock()
			results[name] = status
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	if s.config != nil {
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    "healthy",
			Details: map[string]interface{}{
				"apiBaseURL": s.config.Value("api.base_url"),
				"notifier":   s.config.Value("notifier.type"),
			},
		}
	}

	return results
}
