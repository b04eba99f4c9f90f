package favorite

import (
	"context"
	"fmt"

	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// Client manages the backend favorites list.
type Client interface {
	GetAllFavorites(ctx context.Context) ([]city.City, error)
	AddFavorite(ctx context.Context, create Create) (*city.City, error)
	RemoveFavorite(ctx context.Context, key city.Key) error
}

type UseCase struct {
	client Client
	store  *Store
	logger ports.Logger
}

type UseCaseDependencies struct {
	Client Client
	Store  *Store
	Logger ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Client == nil {
		return nil, errors.NewValidationError("favorite client is required")
	}
	if deps.Store == nil {
		return nil, errors.NewValidationError("favorite store is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{client: deps.Client, store: deps.Store, logger: deps.Logger}, nil
}

// Load replaces the local list with the backend list.
func (uc *UseCase) Load(ctx context.Context) ([]city.City, error) {
	uc.start()

	list, err := uc.client.GetAllFavorites(ctx)
	if err != nil {
		return nil, uc.fail("load", err)
	}

	uc.store.update(func(s *State) {
		s.Favorites = list
		s.Loading = false
	})
	uc.logger.Debug("Favorites loaded", ports.F("count", len(list)))
	return uc.store.Favorites(), nil
}

// Add creates the favorite on the backend. Duplicates are the backend's concern.
func (uc *UseCase) Add(ctx context.Context, c city.City) (city.City, error) {
	uc.start()

	created, err := uc.client.AddFavorite(ctx, FromCity(c))
	if err == nil && created == nil {
		err = errors.NewInvalidDataError(nil)
	}
	if err != nil {
		return city.City{}, uc.fail("add", err)
	}

	added := *created
	uc.store.update(func(s *State) {
		s.Favorites = append([]city.City{added}, s.Favorites...)
		s.Loading = false
	})
	uc.logger.Info("Favorite added", ports.F("city", added.Name), ports.F("country", added.Country))
	return added, nil
}

// Remove deletes the favorite with key on the backend, then prunes the local list.
func (uc *UseCase) Remove(ctx context.Context, key city.Key) error {
	uc.start()

	if err := uc.client.RemoveFavorite(ctx, key); err != nil {
		return uc.fail("remove", err)
	}

	uc.store.update(func(s *State) {
		s.Favorites = city.RemoveByKey(s.Favorites, key)
		s.Loading = false
	})
	uc.logger.Info("Favorite removed", ports.F("city", key.Name), ports.F("country", key.Country))
	return nil
}

func (uc *UseCase) start() {
	uc.store.update(func(s *State) {
		s.Loading = true
		s.Error = ""
	})
}

func (uc *UseCase) fail(op string, err error) error {
	uc.store.update(func(s *State) {
		s.Loading = false
		s.Error = errors.UserMessage(err)
	})
	uc.logger.Warn("Favorite request failed", ports.F("operation", op), ports.F("error", err))
	return fmt.Errorf("%s favorite: %w", op, err)
}
