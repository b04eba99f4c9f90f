package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"weatherdash.app/internal/adapters/backend"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/adapters/notifier"
	"weatherdash.app/internal/adapters/transport"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
	applog "weatherdash.app/pkg/logger"
	"weatherdash.app/pkg/validation"
)

// DependencyContainer builds the ports every use case shares
type DependencyContainer struct {
	config *config.Config

	logger        ports.Logger
	fileLogger    *infrastructure.FileLoggerAdapter
	validator     *validator.Validate
	metrics       *infrastructure.MetricsCollector
	redisNotifier *notifier.RedisNotifier
	httpTransport *transport.HTTPTransport
	clients       *backend.Clients
	ports         *ports.ApplicationPorts
}

// DependencyOptions overrides parts of the container, mostly for tests
type DependencyOptions struct {
	// Logger replaces the slog/file logger chosen from configuration.
	Logger ports.Logger
	// HTTPClient replaces the *http.Client of the transport.
	HTTPClient transport.HTTPClient
	// Registry receives the transport metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
	// Notifier replaces the notifier chosen from configuration.
	Notifier ports.Notifier
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	container := &DependencyContainer{
		config:    cfg,
		validator: validation.New(),
	}

	if err := container.initializeLogger(opts.Logger); err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if err := container.initializePorts(opts); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeLogger(override ports.Logger) error {
	if override != nil {
		c.logger = override
		return nil
	}

	logging := c.config.Logging
	base := applog.New(applog.Options{Level: logging.Level, Format: logging.Format}).
		WithField("service", "weatherdash")
	slog.SetDefault(base.Logger)

	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(base.Logger)
	if logging.EnableFileLogging {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(logging.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			logger = infrastructure.MultiLogger{logger, fileLogger}
			slog.Info("File logging enabled", "path", logging.LogFilePath)
		}
	}

	c.logger = logger
	return nil
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) error {
	c.logger.Info("Initializing ports...")

	metrics, err := infrastructure.NewMetricsCollector(opts.Registry)
	if err != nil {
		return fmt.Errorf("create metrics collector: %w", err)
	}
	c.metrics = metrics

	notify := opts.Notifier
	if notify == nil {
		notify, err = c.createNotifier()
		if err != nil {
			return fmt.Errorf("create notifier: %w", err)
		}
	}

	api := c.config.API
	params := transport.HTTPTransportParams{
		BaseURL:        api.BaseURL,
		Timeout:        api.Timeout(),
		Client:         opts.HTTPClient,
		RateLimitRPS:   api.RateLimitRPS,
		RateLimitBurst: api.RateLimitBurst,
		Validator:      c.validator,
		Logger:         c.logger,
	}
	if api.BreakerEnabled {
		params.Breaker = &transport.BreakerSettings{
			MaxConsecutiveFailures: api.BreakerMaxFailures,
			OpenTimeout:            time.Duration(api.BreakerOpenSeconds) * time.Second,
		}
	}

	httpTransport, err := transport.NewHTTPTransport(params)
	if err != nil {
		return fmt.Errorf("create HTTP transport: %w", err)
	}
	c.httpTransport = httpTransport

	// Outermost layer notifies, so each failure is reported once
	var chain ports.Transport = transport.NewMetricsTransport(httpTransport, metrics)
	if c.config.Logging.EnableAPILogging {
		chain = transport.NewLoggingTransport(chain, c.logger)
		c.logger.Info("API call logging enabled")
	}
	chain = transport.NewNotifyingTransport(chain, notify)

	c.clients = backend.NewClients(chain)
	c.ports = &ports.ApplicationPorts{
		Transport: chain,
		Notifier:  notify,
		Metrics:   metrics,
		Logger:    c.logger,
	}

	c.logger.Info("Ports initialized successfully",
		ports.F("base_url", httpTransport.BaseURL()),
		ports.F("notifier", c.config.Notifier.Type.String()))
	return nil
}

func (c *DependencyContainer) createNotifier() (ports.Notifier, error) {
	slogNotifier := notifier.NewSlogNotifier(c.logger)

	switch c.config.Notifier.Type {
	case config.NotifierTypeRedis:
		redisNotifier, err := notifier.NewRedisNotifier(notifier.RedisNotifierParams{
			Config:  &c.config.Notifier.Redis,
			Channel: c.config.Notifier.Channel,
			Logger:  c.logger,
		})
		if err != nil {
			return nil, err
		}
		c.redisNotifier = redisNotifier
		return notifier.NewMulti(slogNotifier, redisNotifier), nil
	default:
		return slogNotifier, nil
	}
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Clients() *backend.Clients {
	return c.clients
}

func (c *DependencyContainer) Metrics() *infrastructure.MetricsCollector {
	return c.metrics
}

func (c *DependencyContainer) Validator() *validator.Validate {
	return c.validator
}

// RedisNotifier returns the Redis notifier, nil unless WEATHERDASH_NOTIFIER=redis
func (c *DependencyContainer) RedisNotifier() *notifier.RedisNotifier {
	return c.redisNotifier
}

func (c *DependencyContainer) BaseURL() string {
	if c.httpTransport == nil {
		return c.config.API.BaseURL
	}
	return c.httpTransport.BaseURL()
}

// Cleanup releases the Redis connection and the log file
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	if c.redisNotifier != nil {
		if err := c.redisNotifier.Close(); err != nil {
			firstErr = fmt.Errorf("close redis notifier: %w", err)
		}
		c.redisNotifier = nil
	}
	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log file: %w", err)
		}
		c.fileLogger = nil
	}
	return firstErr
}
