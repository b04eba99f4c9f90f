// Package mockbackend is a local stand-in for the dashboard backend. It serves
// the same HTTP contract from deterministic mock weather and a GORM store.
package mockbackend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"weatherdash.app/internal/core/chat"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/favorite"
	"weatherdash.app/internal/core/health"
	"weatherdash.app/internal/core/preference"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
	"weatherdash.app/pkg/validation"
)

const (
	ServiceName    = "Weather Visualizer API"
	ServiceVersion = "1.0.0"

	unknownCity = "Unknown"
)

// Store is the persistence the handlers need
type Store interface {
	ListFavorites(ctx context.Context) ([]city.City, error)
	AddFavorite(ctx context.Context, create favorite.Create) (city.City, error)
	RemoveFavorite(ctx context.Context, key city.Key) error
	GetPreferences(ctx context.Context) (preference.Preference, error)
	UpdatePreferences(ctx context.Context, p preference.Preference) (preference.Preference, error)
}

// Envelope is the response wrapper of every endpoint
type Envelope struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Server serves the backend HTTP contract using Gin
type Server struct {
	router    *gin.Engine
	server    *http.Server
	store     Store
	data      *DataFactory
	validator *validator.Validate
	logger    ports.Logger
	now       func() time.Time
}

// ServerOptions represents options for creating the mock backend
type ServerOptions struct {
	Port      int
	Store     Store
	Data      *DataFactory
	Validator *validator.Validate
	Logger    ports.Logger
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Store == nil {
		return errors.NewValidationError("store is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func NewServer(opts ServerOptions) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mock backend options: %w", err)
	}
	if opts.Data == nil {
		opts.Data = NewDataFactory(nil)
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}

	s := &Server{
		router:    gin.New(),
		store:     opts.Store,
		data:      opts.Data,
		validator: opts.Validator,
		logger:    opts.Logger,
		now:       time.Now,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather/current", s.getCurrentWeather)
		api.GET("/weather/forecast/hourly", s.getHourlyForecast)
		api.GET("/weather/forecast/daily", s.getDailyForecast)
		api.GET("/weather/alerts", s.getAlerts)
		api.GET("/cities/search", s.searchCities)
		api.GET("/preferences", s.getPreferences)
		api.PUT("/preferences", s.updatePreferences)
		api.GET("/favorites", s.getFavorites)
		api.POST("/favorites", s.addFavorite)
		api.DELETE("/favorites", s.removeFavorite)
		api.POST("/ai/chat", s.chat)
		api.GET("/health", s.health)
	}
	s.router.NoRoute(func(c *gin.Context) {
		s.fail(c, http.StatusNotFound, "Not found")
	})
}

// ListenAndServe blocks until the server stops
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting mock backend", ports.F("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Mock backend request",
			ports.F("method", c.Request.Method),
			ports.F("path", c.Request.URL.Path),
			ports.F("status", c.Writer.Status()),
			ports.F("request_id", c.GetHeader("X-Request-ID")),
			ports.F("duration_ms", time.Since(start).Milliseconds()))
	}
}

func (s *Server) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Code: 0, Message: "ok", Data: data, Timestamp: s.now().UnixMilli()})
}

// fail writes an error envelope whose code mirrors the HTTP status
func (s *Server) fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Code: status, Message: message, Timestamp: s.now().UnixMilli()})
}

// handleError maps store errors to error envelopes
func (s *Server) handleError(c *gin.Context, err error) {
	switch errors.TypeOf(err) {
	case errors.ValidationError:
		s.fail(c, http.StatusBadRequest, errors.UserMessage(err))
	case errors.NotFoundError:
		s.fail(c, http.StatusNotFound, errors.UserMessage(err))
	default:
		s.logger.Error("Mock backend request failed", ports.F("path", c.Request.URL.Path), ports.F("error", err))
		s.fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

type location struct {
	lat  float64
	lon  float64
	city string
}

func (s *Server) parseLocation(c *gin.Context) (location, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		s.fail(c, http.StatusBadRequest, "lat and lon are required numbers")
		return location{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		s.fail(c, http.StatusBadRequest, "lat or lon out of range")
		return location{}, false
	}

	name := strings.TrimSpace(c.Query("city"))
	if name == "" {
		name = unknownCity
	}
	return location{lat: lat, lon: lon, city: name}, true
}

func (s *Server) getCurrentWeather(c *gin.Context) {
	if loc, ok := s.parseLocation(c); ok {
		s.ok(c, s.data.CurrentWeather(loc.city, loc.lat, loc.lon))
	}
}

func (s *Server) getHourlyForecast(c *gin.Context) {
	if loc, ok := s.parseLocation(c); ok {
		s.ok(c, s.data.HourlyForecast(loc.city, loc.lat, loc.lon))
	}
}

func (s *Server) getDailyForecast(c *gin.Context) {
	if loc, ok := s.parseLocation(c); ok {
		s.ok(c, s.data.DailyForecast(loc.city, loc.lat, loc.lon))
	}
}

func (s *Server) getAlerts(c *gin.Context) {
	if loc, ok := s.parseLocation(c); ok {
		s.ok(c, s.data.Alerts(loc.city, loc.lat, loc.lon))
	}
}

func (s *Server) searchCities(c *gin.Context) {
	keyword, ok := validation.TrimAndValidate(c.Query("keyword"))
	if !ok {
		s.fail(c, http.StatusBadRequest, "Keyword cannot be empty")
		return
	}
	s.ok(c, s.data.SearchCities(keyword))
}

func (s *Server) getPreferences(c *gin.Context) {
	p, err := s.store.GetPreferences(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.ok(c, p)
}

func (s *Server) updatePreferences(c *gin.Context) {
	var p preference.Preference
	if !s.bind(c, &p) {
		return
	}

	saved, err := s.store.UpdatePreferences(c.Request.Context(), p)
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.logger.Info("Updated user preferences", ports.F("default_city", saved.DefaultCity))
	s.ok(c, saved)
}

func (s *Server) getFavorites(c *gin.Context) {
	list, err := s.store.ListFavorites(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.ok(c, list)
}

func (s *Server) addFavorite(c *gin.Context) {
	var create favorite.Create
	if !s.bind(c, &create) {
		return
	}

	added, err := s.store.AddFavorite(c.Request.Context(), create)
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.logger.Info("Added favorite city", ports.F("name", added.Name))
	s.ok(c, added)
}

func (s *Server) removeFavorite(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	key := city.Key{Name: c.Query("name"), Country: c.Query("country"), Lat: lat, Lon: lon}
	if latErr != nil || lonErr != nil || s.validator.Struct(key) != nil {
		s.fail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	if err := s.store.RemoveFavorite(c.Request.Context(), key); err != nil {
		s.handleError(c, err)
		return
	}
	s.logger.Info("Removed favorite city", ports.F("name", key.Name))
	s.ok(c, nil)
}

func (s *Server) chat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil || !validation.IsNotEmpty(req.Question) {
		s.fail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	name := req.City.Name
	if name == "" {
		name = unknownCity
	}
	s.ok(c, chat.Response{
		Answer:     s.data.Answer(req.Question, name),
		References: append([]string(nil), ChatReferences...),
	})
}

func (s *Server) health(c *gin.Context) {
	s.ok(c, health.Status{Status: "ok", Service: ServiceName, Version: ServiceVersion})
}

// bind decodes the JSON body into dst and validates it, writing a 400 on failure
func (s *Server) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.fail(c, http.StatusBadRequest, "Validation failed")
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		s.logger.Warn("Validation failed", ports.F("path", c.Request.URL.Path), ports.F("fields", validation.Fields(err)))
		s.fail(c, http.StatusBadRequest, "Validation failed")
		return false
	}
	return true
}
