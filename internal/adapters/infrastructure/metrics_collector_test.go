package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMetricsCollector_RecordRequest(t *testing.T) {
	collector, err := NewMetricsCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	collector.RecordRequest("GET", "/api/weather/current", "success", 120*time.Millisecond)
	collector.RecordRequest("GET", "/api/weather/current", "success", 80*time.Millisecond)
	collector.RecordRequest("GET", "/api/weather/current", "network", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.requests.WithLabelValues("GET", "/api/weather/current", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requests.WithLabelValues("GET", "/api/weather/current", "network")))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.duration))
}

func TestMetricsCollector_DoubleRegistrationFails(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewMetricsCollector(registry)
	require.NoError(t, err)

	_, err = NewMetricsCollector(registry)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestMetricsServer_Routes(t *testing.T) {
	collector, err := NewMetricsCollector(nil)
	require.NoError(t, err)
	collector.RecordRequest("DELETE", "/api/favorites", "success", time.Millisecond)

	checker := mocks.NewHealthChecker(t)
	checker.EXPECT().Check(mock.Anything).Return(ports.HealthStatus{Component: "backend", Status: "unhealthy", Error: "Server error"})

	server, err := NewMetricsServer(MetricsServerOptions{
		Port:          0,
		Collector:     collector,
		HealthChecker: NewSystemHealthChecker(SystemHealthCheckerConfig{Checkers: map[string]ports.HealthChecker{"backend": checker}}),
		Logger:        mocks.NewLogger(t),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `weatherdash_api_requests_total{method="DELETE",outcome="success",path="/api/favorites"} 1`)

	w = httptest.NewRecorder()
	server.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]ports.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Server error", body["backend"].Error)

	require.NoError(t, server.Shutdown(context.Background()))
}

func TestMetricsServerOptions_Validate(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
