package infrastructure

import (
	"fmt"
	"sort"

	"weatherdash.app/internal/config"
)

const maskedValue = "******"

// ConfigEntry is one effective setting ready for display
type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ConfigDisplayAdapter flattens the loaded configuration for the config
// command and the health report. Secrets are masked.
type ConfigDisplayAdapter struct {
	values map[string]string
}

func NewConfigDisplayAdapter(cfg *config.Config) *ConfigDisplayAdapter {
	values := map[string]string{
		"api.base_url":             cfg.API.BaseURL,
		"api.timeout":              cfg.API.Timeout().String(),
		"api.rate_limit_rps":       fmt.Sprintf("%g", cfg.API.RateLimitRPS),
		"api.rate_limit_burst":     fmt.Sprintf("%d", cfg.API.RateLimitBurst),
		"api.breaker_enabled":      fmt.Sprintf("%t", cfg.API.BreakerEnabled),
		"api.breaker_max_failures": fmt.Sprintf("%d", cfg.API.BreakerMaxFailures),
		"api.breaker_open_seconds": fmt.Sprintf("%d", cfg.API.BreakerOpenSeconds),
		"stores.default_city":      fmt.Sprintf("%s, %s", cfg.Stores.DefaultCityName, cfg.Stores.DefaultCityCountry),
		"stores.default_city_lat":  fmt.Sprintf("%g", cfg.Stores.DefaultCityLat),
		"stores.default_city_lon":  fmt.Sprintf("%g", cfg.Stores.DefaultCityLon),
		"stores.discard_stale":     fmt.Sprintf("%t", cfg.Stores.DiscardStale),
		"notifier.type":            cfg.Notifier.Type.String(),
		"notifier.channel":         cfg.Notifier.Channel,
		"notifier.redis.addr":      cfg.Notifier.Redis.Addr,
		"notifier.redis.password":  mask(cfg.Notifier.Redis.Password),
		"notifier.redis.db":        fmt.Sprintf("%d", cfg.Notifier.Redis.DB),
		"logging.file_enabled":     fmt.Sprintf("%t", cfg.Logging.EnableFileLogging),
		"logging.file_path":        cfg.Logging.LogFilePath,
		"logging.api_enabled":      fmt.Sprintf("%t", cfg.Logging.EnableAPILogging),
		"logging.level":            cfg.Logging.Level,
		"logging.format":           cfg.Logging.Format,
		"metrics.port":             fmt.Sprintf("%d", cfg.Metrics.Port),
		"mock_backend.port":        fmt.Sprintf("%d", cfg.MockBackend.Port),
		"mock_backend.db_driver":   cfg.MockBackend.DBDriver,
		"mock_backend.dsn":         mask(cfg.MockBackend.DSN),
	}
	return &ConfigDisplayAdapter{values: values}
}

// Value returns one setting, "" when unknown
func (c *ConfigDisplayAdapter) Value(key string) string {
	return c.values[key]
}

// Entries returns every setting sorted by key
func (c *ConfigDisplayAdapter) Entries() []ConfigEntry {
	entries := make([]ConfigEntry, 0, len(c.values))
	for k, v := range c.values {
		entries = append(entries, ConfigEntry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return maskedValue
}
