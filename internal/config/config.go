package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherdash.app/pkg/errors"
)

const (
	maxRedisDB      = 15
	maxPortNumber   = 65535
	maxTimeoutMS    = 600000
	defaultTimeoutS = 30
)

// Config represents the application configuration structure
type Config struct {
	API         APIConfig         `split_words:"true"`
	Stores      StoresConfig      `split_words:"true"`
	Notifier    NotifierConfig    `split_words:"true"`
	Logging     LoggingConfig     `split_words:"true"`
	Metrics     MetricsConfig     `split_words:"true"`
	MockBackend MockBackendConfig `split_words:"true"`
}

// APIConfig describes how the backend is reached.
type APIConfig struct {
	BaseURL            string  `envconfig:"WEATHERDASH_API_BASE_URL" default:"http://localhost:8080"`
	TimeoutMS          int     `envconfig:"WEATHERDASH_API_TIMEOUT_MS" default:"30000"`
	RateLimitRPS       float64 `envconfig:"WEATHERDASH_API_RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst     int     `envconfig:"WEATHERDASH_API_RATE_LIMIT_BURST" default:"1"`
	BreakerEnabled     bool    `envconfig:"WEATHERDASH_API_BREAKER_ENABLED" default:"false"`
	BreakerMaxFailures uint32  `envconfig:"WEATHERDASH_API_BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenSeconds int     `envconfig:"WEATHERDASH_API_BREAKER_OPEN_SECONDS" default:"30"`
}

// Timeout returns the per-call timeout, 30s when unset.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutMS <= 0 {
		return defaultTimeoutS * time.Second
	}
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// StoresConfig holds the initial state of the stores.
type StoresConfig struct {
	DefaultCityName    string  `envconfig:"WEATHERDASH_DEFAULT_CITY_NAME" default:"Beijing"`
	DefaultCityCountry string  `envconfig:"WEATHERDASH_DEFAULT_CITY_COUNTRY" default:"CN"`
	DefaultCityLat     float64 `envconfig:"WEATHERDASH_DEFAULT_CITY_LAT" default:"39.9042"`
	DefaultCityLon     float64 `envconfig:"WEATHERDASH_DEFAULT_CITY_LON" default:"116.4074"`
	DiscardStale       bool    `envconfig:"WEATHERDASH_DISCARD_STALE" default:"false"`
}

// NotifierType represents where user-facing error notices go
type NotifierType int

const (
	NotifierTypeUnknown NotifierType = iota
	NotifierTypeSlog
	NotifierTypeRedis
)

// String returns the string representation of notifier type
func (n NotifierType) String() string {
	switch n {
	case NotifierTypeSlog:
		return "slog"
	case NotifierTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the notifier type is valid
func (n NotifierType) IsValid() bool {
	return n == NotifierTypeSlog || n == NotifierTypeRedis
}

// NotifierTypeFromString converts string to NotifierType enum
func NotifierTypeFromString(s string) NotifierType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slog":
		return NotifierTypeSlog
	case "redis":
		return NotifierTypeRedis
	default:
		return NotifierTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (n *NotifierType) UnmarshalText(text []byte) error {
	*n = NotifierTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (n NotifierType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

type NotifierConfig struct {
	Type    NotifierType `envconfig:"WEATHERDASH_NOTIFIER" default:"slog"`
	Channel string       `envconfig:"WEATHERDASH_NOTIFIER_CHANNEL" default:"weatherdash:notices"`
	Redis   RedisConfig  `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type LoggingConfig struct {
	EnableFileLogging bool   `envconfig:"WEATHERDASH_ENABLE_FILE_LOGGING" default:"false"`
	LogFilePath       string `envconfig:"WEATHERDASH_LOG_FILE_PATH" default:"logs/weatherdash_api.log"`
	EnableAPILogging  bool   `envconfig:"WEATHERDASH_ENABLE_API_LOGGING" default:"true"`
	Level             string `envconfig:"WEATHERDASH_LOG_LEVEL" default:"info"`
	Format            string `envconfig:"WEATHERDASH_LOG_FORMAT" default:"text"`
}

type MetricsConfig struct {
	// Port 0 disables the /metrics listener.
	Port int `envconfig:"WEATHERDASH_METRICS_PORT" default:"0"`
}

type MockBackendConfig struct {
	Port     int    `envconfig:"MOCK_BACKEND_PORT" default:"8080"`
	DBDriver string `envconfig:"MOCK_BACKEND_DB_DRIVER" default:"sqlite"`
	DSN      string `envconfig:"MOCK_BACKEND_DSN" default:"file::memory:?cache=shared"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Stores.Validate(); err != nil {
		return err
	}
	if err := c.Notifier.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.MockBackend.Validate(); err != nil {
		return err
	}
	return nil
}

func (a *APIConfig) Validate() error {
	if a.BaseURL == "" {
		return errors.NewConfigurationError("WEATHERDASH_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(a.BaseURL, "http://") && !strings.HasPrefix(a.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHERDASH_API_BASE_URL must start with http:// or https://", nil)
	}
	if a.TimeoutMS < 1 || a.TimeoutMS > maxTimeoutMS {
		return errors.NewConfigurationError("WEATHERDASH_API_TIMEOUT_MS must be between 1 and 600000", nil)
	}
	if a.RateLimitRPS < 0 {
		return errors.NewConfigurationError("WEATHERDASH_API_RATE_LIMIT_RPS cannot be negative", nil)
	}
	if a.RateLimitRPS > 0 && a.RateLimitBurst < 1 {
		return errors.NewConfigurationError("WEATHERDASH_API_RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled", nil)
	}
	if a.BreakerEnabled {
		if a.BreakerMaxFailures < 1 {
			return errors.NewConfigurationError("WEATHERDASH_API_BREAKER_MAX_FAILURES must be at least 1", nil)
		}
		if a.BreakerOpenSeconds < 1 {
			return errors.NewConfigurationError("WEATHERDASH_API_BREAKER_OPEN_SECONDS must be at least 1", nil)
		}
	}
	return nil
}

func (s *StoresConfig) Validate() error {
	if strings.TrimSpace(s.DefaultCityName) == "" {
		return errors.NewConfigurationError("WEATHERDASH_DEFAULT_CITY_NAME cannot be empty", nil)
	}
	if s.DefaultCityLat < -90 || s.DefaultCityLat > 90 {
		return errors.NewConfigurationError("WEATHERDASH_DEFAULT_CITY_LAT must be between -90 and 90", nil)
	}
	if s.DefaultCityLon < -180 || s.DefaultCityLon > 180 {
		return errors.NewConfigurationError("WEATHERDASH_DEFAULT_CITY_LON must be between -180 and 180", nil)
	}
	return nil
}

func (n *NotifierConfig) Validate() error {
	if !n.Type.IsValid() {
		return errors.NewConfigurationError("WEATHERDASH_NOTIFIER must be one of: slog, redis", nil)
	}
	if n.Type == NotifierTypeRedis {
		if n.Channel == "" {
			return errors.NewConfigurationError("WEATHERDASH_NOTIFIER_CHANNEL cannot be empty when using Redis notifier", nil)
		}
		return n.Redis.Validate()
	}
	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis notifier", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	if l.EnableFileLogging && l.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHERDASH_LOG_FILE_PATH cannot be empty when file logging is enabled", nil)
	}
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.NewConfigurationError("WEATHERDASH_LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	switch strings.ToLower(l.Format) {
	case "", "text", "json":
	default:
		return errors.NewConfigurationError("WEATHERDASH_LOG_FORMAT must be one of: text, json", nil)
	}
	return nil
}

func (m *MetricsConfig) Validate() error {
	if m.Port < 0 || m.Port > maxPortNumber {
		return errors.NewConfigurationError("WEATHERDASH_METRICS_PORT must be between 0 and 65535", nil)
	}
	return nil
}

func (m *MockBackendConfig) Validate() error {
	if m.Port < 1 || m.Port > maxPortNumber {
		return errors.NewConfigurationError("MOCK_BACKEND_PORT must be between 1 and 65535", nil)
	}
	switch m.DBDriver {
	case "sqlite":
	case "postgres":
		if m.DSN == "" {
			return errors.NewConfigurationError("MOCK_BACKEND_DSN cannot be empty for postgres", nil)
		}
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("MOCK_BACKEND_DB_DRIVER must be one of: sqlite, postgres (got %q)", m.DBDriver), nil)
	}
	return nil
}
