package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// MetricsServer exposes /metrics and /health on a side port
type MetricsServer struct {
	router *gin.Engine
	server *http.Server
	logger ports.Logger
}

// MetricsServerOptions represents options for creating the metrics server
type MetricsServerOptions struct {
	Port          int
	Collector     *MetricsCollector
	HealthChecker ports.SystemHealthChecker
	Logger        ports.Logger
}

// Validate checks if all required dependencies are provided
func (opts *MetricsServerOptions) Validate() error {
	if opts.Collector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func NewMetricsServer(opts MetricsServerOptions) (*MetricsServer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid metrics server options: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(opts.Collector.Handler()))
	router.GET("/health", func(c *gin.Context) {
		results := opts.HealthChecker.CheckAll(c.Request.Context())
		status := http.StatusOK
		for _, r := range results {
			if !r.Healthy() {
				status = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(status, results)
	})

	return &MetricsServer{
		router: router,
		logger: opts.Logger,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", opts.Port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}, nil
}

// Start serves in the background until Shutdown
func (s *MetricsServer) Start() {
	go func() {
		s.logger.Info("Starting metrics server", ports.F("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Metrics server failed", ports.F("error", err))
		}
	}()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// GetRouter returns the router for testing purposes
func (s *MetricsServer) GetRouter() *gin.Engine {
	return s.router
}
