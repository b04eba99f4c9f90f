package city

import (
	"context"
	"fmt"
	"strings"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// Searcher looks cities up by keyword.
type Searcher interface {
	SearchCities(ctx context.Context, keyword string) ([]City, error)
}

type UseCase struct {
	client Searcher
	store  *Store
	logger ports.Logger
}

type UseCaseDependencies struct {
	Client Searcher
	Store  *Store
	Logger ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Client == nil {
		return nil, errors.NewValidationError("city client is required")
	}
	if deps.Store == nil {
		return nil, errors.NewValidationError("city store is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		client: deps.Client,
		store:  deps.Store,
		logger: deps.Logger,
	}, nil
}

// Search returns the candidates for keyword in backend order.
func (uc *UseCase) Search(ctx context.Context, keyword string) ([]City, error) {
	cities, err := uc.client.SearchCities(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search cities %q: %w", keyword, err)
	}

	uc.logger.Debug("City search completed",
		ports.F("keyword", keyword),
		ports.F("results", len(cities)))
	return cities, nil
}

// Resolve looks name up and returns the first candidate carrying exactly that
// name, ignoring case. No such candidate is a not-found error.
func (uc *UseCase) Resolve(ctx context.Context, name string) (City, error) {
	cities, err := uc.Search(ctx, name)
	if err != nil {
		return City{}, err
	}
	for _, c := range cities {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return City{}, errors.NewNotFoundError(fmt.Sprintf("city %q not found", name))
}

// Select makes c the current city.
func (uc *UseCase) Select(c City) {
	uc.store.SetCurrentCity(c)
	uc.logger.Info("Current city changed", ports.F("city", c.Name), ports.F("country", c.Country))
}
