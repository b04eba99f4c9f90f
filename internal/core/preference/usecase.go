package preference

import (
	"context"
	"fmt"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// Client reads and fully replaces the backend preferences.
type Client interface {
	GetPreferences(ctx context.Context) (*Preference, error)
	UpdatePreferences(ctx context.Context, p Preference) (*Preference, error)
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
		return nil, errors.NewValidationError("preference client is required")
	}
	if deps.Store == nil {
		return nil, errors.NewValidationError("preference store is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{client: deps.Client, store: deps.Store, logger: deps.Logger}, nil
}

// Load applies the backend copy to the store.
func (uc *UseCase) Load(ctx context.Context) (Preference, error) {
	return uc.run(ctx, "load", func(ctx context.Context) (*Preference, error) {
		return uc.client.GetPreferences(ctx)
	})
}

// Save replaces the backend copy with p and applies the result to the store.
func (uc *UseCase) Save(ctx context.Context, p Preference) (Preference, error) {
	return uc.run(ctx, "save", func(ctx context.Context) (*Preference, error) {
		return uc.client.UpdatePreferences(ctx, p)
	})
}

func (uc *UseCase) run(ctx context.Context, op string, call func(context.Context) (*Preference, error)) (Preference, error) {
	uc.store.update(func(s *State) {
		s.Loading = true
		s.Error = ""
	})

	result, err := call(ctx)
	if err == nil && result == nil {
		err = errors.NewInvalidDataError(nil)
	}
	if err != nil {
		uc.store.update(func(s *State) {
			s.Loading = false
			s.Error = errors.UserMessage(err)
		})
		uc.logger.Warn("Preference request failed", ports.F("operation", op), ports.F("error", err))
		return Preference{}, fmt.Errorf("%s preferences: %w", op, err)
	}

	applied := result.clone()
	uc.store.update(func(s *State) {
		s.Preferences = applied
		s.Loading = false
	})
	uc.logger.Debug("Preferences applied", ports.F("operation", op), ports.F("exists", applied.Exists()))
	return applied.clone(), nil
}
