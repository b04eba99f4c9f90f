package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/pkg/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", config.API.BaseURL)
	assert.Equal(t, 30000, config.API.TimeoutMS)
	assert.Equal(t, 30*time.Second, config.API.Timeout())
	assert.Zero(t, config.API.RateLimitRPS)
	assert.False(t, config.API.BreakerEnabled)

	assert.Equal(t, "Beijing", config.Stores.DefaultCityName)
	assert.Equal(t, "CN", config.Stores.DefaultCityCountry)
	assert.InDelta(t, 39.9042, config.Stores.DefaultCityLat, 1e-9)
	assert.InDelta(t, 116.4074, config.Stores.DefaultCityLon, 1e-9)
	assert.False(t, config.Stores.DiscardStale)

	assert.Equal(t, NotifierTypeSlog, config.Notifier.Type)
	assert.False(t, config.Logging.EnableFileLogging)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
	assert.Equal(t, 0, config.Metrics.Port)
	assert.Equal(t, "sqlite", config.MockBackend.DBDriver)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	os.Clearenv()
	require.NoError(t, os.Setenv("WEATHERDASH_API_BASE_URL", "https://weather.example.com/"))
	require.NoError(t, os.Setenv("WEATHERDASH_API_TIMEOUT_MS", "1500"))
	require.NoError(t, os.Setenv("WEATHERDASH_API_BREAKER_ENABLED", "true"))
	require.NoError(t, os.Setenv("WEATHERDASH_DEFAULT_CITY_NAME", "London"))
	require.NoError(t, os.Setenv("WEATHERDASH_DISCARD_STALE", "true"))
	require.NoError(t, os.Setenv("WEATHERDASH_NOTIFIER", "redis"))
	require.NoError(t, os.Setenv("REDIS_ADDR", "redis:6379"))
	defer os.Clearenv()

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://weather.example.com/", config.API.BaseURL)
	assert.Equal(t, 1500*time.Millisecond, config.API.Timeout())
	assert.True(t, config.API.BreakerEnabled)
	assert.Equal(t, "London", config.Stores.DefaultCityName)
	assert.True(t, config.Stores.DiscardStale)
	assert.Equal(t, NotifierTypeRedis, config.Notifier.Type)
	assert.Equal(t, "redis:6379", config.Notifier.Redis.Addr)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "BaseURLWithoutScheme", env: map[string]string{"WEATHERDASH_API_BASE_URL": "localhost:8080"}},
		{name: "ZeroTimeout", env: map[string]string{"WEATHERDASH_API_TIMEOUT_MS": "0"}},
		{name: "NegativeRateLimit", env: map[string]string{"WEATHERDASH_API_RATE_LIMIT_RPS": "-1"}},
		{name: "UnknownNotifier", env: map[string]string{"WEATHERDASH_NOTIFIER": "pigeon"}},
		{name: "LatitudeOutOfRange", env: map[string]string{"WEATHERDASH_DEFAULT_CITY_LAT": "91"}},
		{name: "MetricsPortOutOfRange", env: map[string]string{"WEATHERDASH_METRICS_PORT": "70000"}},
		{name: "UnknownLogLevel", env: map[string]string{"WEATHERDASH_LOG_LEVEL": "verbose"}},
		{name: "UnknownLogFormat", env: map[string]string{"WEATHERDASH_LOG_FORMAT": "xml"}},
		{name: "UnknownDBDriver", env: map[string]string{"MOCK_BACKEND_DB_DRIVER": "mysql"}},
		{name: "PostgresWithoutDSN", env: map[string]string{"MOCK_BACKEND_DB_DRIVER": "postgres", "MOCK_BACKEND_DSN": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				require.NoError(t, os.Setenv(k, v))
			}
			defer os.Clearenv()

			_, err := LoadConfig()
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
		})
	}
}

func TestNotifierTypeFromString(t *testing.T) {
	assert.Equal(t, NotifierTypeSlog, NotifierTypeFromString("SLOG"))
	assert.Equal(t, NotifierTypeRedis, NotifierTypeFromString(" redis "))
	assert.Equal(t, NotifierTypeUnknown, NotifierTypeFromString(""))
	assert.Equal(t, "redis", NotifierTypeRedis.String())
}
