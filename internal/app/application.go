package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/chat"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/favorite"
	"weatherdash.app/internal/core/preference"
	"weatherdash.app/internal/core/weather"
	"weatherdash.app/internal/ports"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Stores
	initialCity     city.City
	cityStore       *city.Store
	weatherStore    *weather.Store
	preferenceStore *preference.Store
	favoriteStore   *favorite.Store
	chatStore       *chat.Store

	// Use Cases
	cityUseCase       *city.UseCase
	weatherUseCase    *weather.UseCase
	preferenceUseCase *preference.UseCase
	favoriteUseCase   *favorite.UseCase
	chatUseCase       *chat.UseCase

	// Adapters
	healthChecker *infrastructure.SystemHealthChecker
	configDisplay *infrastructure.ConfigDisplayAdapter
	metricsServer *infrastructure.MetricsServer

	// Infrastructure
	ports *ports.ApplicationPorts
}

// Dashboard is a snapshot of every store after a dashboard load
type Dashboard struct {
	City        city.City
	Weather     weather.State
	Preferences preference.State
	Favorites   favorite.State
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg, DependencyOptions{})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	app.initializeStores()

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeStores() {
	stores := a.config.Stores
	a.initialCity = city.City{
		Name:    stores.DefaultCityName,
		Country: stores.DefaultCityCountry,
		Lat:     stores.DefaultCityLat,
		Lon:     stores.DefaultCityLon,
	}
	a.cityStore = city.NewStore(a.initialCity)
	a.weatherStore = weather.NewStore()
	a.preferenceStore = preference.NewStore()
	a.favoriteStore = favorite.NewStore()
	a.chatStore = chat.NewStore()
}

func (a *Application) initializeUseCases() error {
	a.ports.Logger.Info("Initializing use cases...")
	clients := a.deps.Clients()

	cityUseCase, err := city.NewUseCase(city.UseCaseDependencies{
		Client: clients.City,
		Store:  a.cityStore,
		Logger: a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create city use case: %w", err)
	}
	a.cityUseCase = cityUseCase

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Client:       clients.Weather,
		Store:        a.weatherStore,
		Logger:       a.ports.Logger,
		DiscardStale: a.config.Stores.DiscardStale,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	preferenceUseCase, err := preference.NewUseCase(preference.UseCaseDependencies{
		Client: clients.Preference,
		Store:  a.preferenceStore,
		Logger: a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create preference use case: %w", err)
	}
	a.preferenceUseCase = preferenceUseCase

	favoriteUseCase, err := favorite.NewUseCase(favorite.UseCaseDependencies{
		Client: clients.Favorite,
		Store:  a.favoriteStore,
		Logger: a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create favorite use case: %w", err)
	}
	a.favoriteUseCase = favoriteUseCase

	chatUseCase, err := chat.NewUseCase(chat.UseCaseDependencies{
		Client: clients.Chat,
		Store:  a.chatStore,
		Logger: a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create chat use case: %w", err)
	}
	a.chatUseCase = chatUseCase

	a.ports.Logger.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	a.configDisplay = infrastructure.NewConfigDisplayAdapter(a.config)

	checkers := map[string]ports.HealthChecker{
		"backend": infrastructure.NewBackendHealthChecker(a.deps.Clients().Health, a.deps.BaseURL()),
	}
	if redisNotifier := a.deps.RedisNotifier(); redisNotifier != nil {
		checkers["notifier"] = infrastructure.NewPingHealthChecker("redis", redisNotifier)
	}
	a.healthChecker = infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		Checkers: checkers,
		Config:   a.configDisplay,
	})

	if a.config.Metrics.Port > 0 {
		metricsServer, err := infrastructure.NewMetricsServer(infrastructure.MetricsServerOptions{
			Port:          a.config.Metrics.Port,
			Collector:     a.deps.Metrics(),
			HealthChecker: a.healthChecker,
			Logger:        a.ports.Logger,
		})
		if err != nil {
			return fmt.Errorf("create metrics server: %w", err)
		}
		a.metricsServer = metricsServer
	}

	return nil
}

// Start launches the metrics listener when one is configured
func (a *Application) Start() {
	if a.metricsServer != nil {
		a.metricsServer.Start()
	}
}

// LoadDashboard loads preferences and favorites in parallel, then refreshes
// the weather of the current city. While no city has been selected, the
// default city of the loaded preferences becomes the current one. Every
// failure is already recorded in its store; the first one is returned with
// the snapshot.
func (a *Application) LoadDashboard(ctx context.Context) (Dashboard, error) {
	var g errgroup.Group
	g.Go(func() error {
		_, err := a.preferenceUseCase.Load(ctx)
		return err
	})
	g.Go(func() error {
		_, err := a.favoriteUseCase.Load(ctx)
		return err
	})
	firstErr := g.Wait()

	a.applyPreferredCity(ctx)

	if err := a.weatherUseCase.Refresh(ctx, a.cityStore.CurrentCity()); err != nil && firstErr == nil {
		firstErr = err
	}

	return a.Snapshot(), firstErr
}

// applyPreferredCity selects the preferred default city while the city store
// still holds the configured one. A failed lookup keeps the configured city.
func (a *Application) applyPreferredCity(ctx context.Context) {
	prefs := a.preferenceStore.Preferences()
	current := a.cityStore.CurrentCity()
	if !prefs.Exists() || strings.TrimSpace(prefs.DefaultCity) == "" ||
		current.Key() != a.initialCity.Key() || strings.EqualFold(prefs.DefaultCity, current.Name) {
		return
	}

	c, err := a.cityUseCase.Resolve(ctx, prefs.DefaultCity)
	if err != nil {
		a.ports.Logger.Warn("Preferred default city not resolved, keeping configured city",
			ports.F("city", prefs.DefaultCity),
			ports.F("error", err))
		return
	}
	a.cityUseCase.Select(c)
}

// Snapshot returns the current state of every store
func (a *Application) Snapshot() Dashboard {
	return Dashboard{
		City:        a.cityStore.CurrentCity(),
		Weather:     a.weatherStore.State(),
		Preferences: a.preferenceStore.State(),
		Favorites:   a.favoriteStore.State(),
	}
}

func (a *Application) SearchCities(ctx context.Context, keyword string) ([]city.City, error) {
	return a.cityUseCase.Search(ctx, keyword)
}

// SelectCity makes c current and refreshes its weather
func (a *Application) SelectCity(ctx context.Context, c city.City) error {
	a.cityUseCase.Select(c)
	return a.weatherUseCase.Refresh(ctx, c)
}

func (a *Application) Favorites(ctx context.Context) ([]city.City, error) {
	return a.favoriteUseCase.Load(ctx)
}

func (a *Application) AddFavorite(ctx context.Context, c city.City) (city.City, error) {
	return a.favoriteUseCase.Add(ctx, c)
}

func (a *Application) RemoveFavorite(ctx context.Context, key city.Key) error {
	return a.favoriteUseCase.Remove(ctx, key)
}

func (a *Application) SavePreferences(ctx context.Context, p preference.Preference) (preference.Preference, error) {
	return a.preferenceUseCase.Save(ctx, p)
}

// Ask sends question about the current city to the assistant
func (a *Application) Ask(ctx context.Context, question string) (*chat.Response, error) {
	return a.chatUseCase.Ask(ctx, question, a.cityStore.CurrentCity())
}

func (a *Application) Health(ctx context.Context) map[string]ports.HealthStatus {
	return a.healthChecker.CheckAll(ctx)
}

func (a *Application) ConfigEntries() []infrastructure.ConfigEntry {
	return a.configDisplay.Entries()
}

func (a *Application) Shutdown(ctx context.Context) error {
	logger := a.ports.Logger
	logger.Info("Shutting down application...")

	var firstErr error
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down metrics server", ports.F("error", err))
			firstErr = fmt.Errorf("shutdown metrics server: %w", err)
		}
	}

	a.cityStore.Close()
	a.weatherStore.Close()
	a.preferenceStore.Close()
	a.favoriteStore.Close()
	a.chatStore.Close()

	// The log file closes with the dependencies; later entries reach slog only.
	logger.Info("Stores closed, releasing dependencies")
	if err := a.deps.Cleanup(); err != nil {
		logger.Warn("Error releasing dependencies", ports.F("error", err))
		if firstErr == nil {
			firstErr = err
		}
	}

	logger.Info("Application shutdown complete")
	return firstErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

func (a *Application) CityStore() *city.Store {
	return a.cityStore
}

func (a *Application) WeatherStore() *weather.Store {
	return a.weatherStore
}

func (a *Application) PreferenceStore() *preference.Store {
	return a.preferenceStore
}

func (a *Application) FavoriteStore() *favorite.Store {
	return a.favoriteStore
}

func (a *Application) ChatStore() *chat.Store {
	return a.chatStore
}

// GetMetricsServer returns the metrics listener, nil when WEATHERDASH_METRICS_PORT is 0
func (a *Application) GetMetricsServer() *infrastructure.MetricsServer {
	return a.metricsServer
}
