package weather

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// Client fetches weather for a location.
type Client interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64, city string) (*CurrentWeather, error)
	GetHourlyForecast(ctx context.Context, lat, lon float64, city string) ([]HourlyForecast, error)
	GetDailyForecast(ctx context.Context, lat, lon float64, city string) ([]DailyForecast, error)
	GetAlerts(ctx context.Context, lat, lon float64, city string) ([]Alert, error)
}

type UseCase struct {
	client       Client
	store        *Store
	logger       ports.Logger
	discardStale bool
}

type UseCaseDependencies struct {
	Client Client
	Store  *Store
	Logger ports.Logger
	// DiscardStale drops the results of a refresh once a newer one has started.
	// Off by default: the last refresh to resolve wins.
	DiscardStale bool
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Client == nil {
		return nil, errors.NewValidationError("weather client is required")
	}
	if deps.Store == nil {
		return nil, errors.NewValidationError("weather store is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		client:       deps.Client,
		store:        deps.Store,
		logger:       deps.Logger,
		discardStale: deps.DiscardStale,
	}, nil
}

// Refresh loads current weather, hourly and daily forecasts and alerts for c in parallel.
// Each success replaces its own slot. The first failure is recorded in the store and returned.
func (uc *UseCase) Refresh(ctx context.Context, c city.City) error {
	gen := uc.begin()

	var g errgroup.Group
	g.Go(func() error {
		current, err := uc.client.GetCurrentWeather(ctx, c.Lat, c.Lon, c.Name)
		if err != nil {
			return err
		}
		uc.apply(gen, func(s *State) { s.CurrentWeather = current })
		return nil
	})
	g.Go(func() error {
		hourly, err := uc.client.GetHourlyForecast(ctx, c.Lat, c.Lon, c.Name)
		if err != nil {
			return err
		}
		uc.apply(gen, func(s *State) { s.HourlyForecast = hourly })
		return nil
	})
	g.Go(func() error {
		daily, err := uc.client.GetDailyForecast(ctx, c.Lat, c.Lon, c.Name)
		if err != nil {
			return err
		}
		uc.apply(gen, func(s *State) { s.DailyForecast = daily })
		return nil
	})
	g.Go(func() error {
		alerts, err := uc.client.GetAlerts(ctx, c.Lat, c.Lon, c.Name)
		if err != nil {
			return err
		}
		uc.apply(gen, func(s *State) { s.Alerts = alerts })
		return nil
	})

	return uc.finish(gen, c, g.Wait())
}

// RefreshCurrent loads only the current weather for c.
func (uc *UseCase) RefreshCurrent(ctx context.Context, c city.City) error {
	gen := uc.begin()

	current, err := uc.client.GetCurrentWeather(ctx, c.Lat, c.Lon, c.Name)
	if err == nil {
		uc.apply(gen, func(s *State) { s.CurrentWeather = current })
	}

	return uc.finish(gen, c, err)
}

func (uc *UseCase) begin() uint64 {
	var gen uint64
	if uc.discardStale {
		gen = uc.store.NextGeneration()
	}
	uc.apply(gen, func(s *State) {
		s.Loading = true
		s.Error = ""
	})
	return gen
}

func (uc *UseCase) finish(gen uint64, c city.City, err error) error {
	applied := uc.apply(gen, func(s *State) {
		s.Loading = false
		if err != nil {
			s.Error = errors.UserMessage(err)
		}
	})

	if !applied {
		uc.logger.Debug("Discarded stale weather refresh", ports.F("city", c.Name), ports.F("generation", gen))
	}

	if err != nil {
		uc.logger.Warn("Weather refresh failed",
			ports.F("city", c.Name),
			ports.F("error", err))
		return fmt.Errorf("refresh weather for %s: %w", c.Name, err)
	}

	uc.logger.Debug("Weather refreshed", ports.F("city", c.Name))
	return nil
}

func (uc *UseCase) apply(gen uint64, mutate func(*State)) bool {
	return uc.store.Update(gen, mutate)
}
