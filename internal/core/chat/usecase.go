package chat

import (
	"context"
	"fmt"
	"strings"

	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// Client sends one question to the assistant.
type Client interface {
	Chat(ctx context.Context, req Request) (*Response, error)
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
		return nil, errors.NewValidationError("chat client is required")
	}
	if deps.Store == nil {
		return nil, errors.NewValidationError("chat store is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{client: deps.Client, store: deps.Store, logger: deps.Logger}, nil
}

// Ask appends the question, asks the assistant about c and appends the answer.
// A blank question is rejected before anything is recorded.
func (uc *UseCase) Ask(ctx context.Context, question string, c city.City) (*Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.NewValidationError("question is required")
	}
	if _, err := uc.store.AddMessage(RoleUser, question); err != nil {
		return nil, fmt.Errorf("record question: %w", err)
	}

	uc.store.SetLoading(true)
	defer uc.store.SetLoading(false)

	resp, err := uc.client.Chat(ctx, Request{Question: question, City: c})
	if err == nil && resp == nil {
		err = errors.NewInvalidDataError(nil)
	}
	if err != nil {
		uc.logger.Warn("Chat request failed", ports.F("city", c.Name), ports.F("error", err))
		return nil, fmt.Errorf("ask assistant: %w", err)
	}

	if _, err := uc.store.AddMessage(RoleAssistant, resp.Answer); err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	uc.logger.Debug("Chat answered", ports.F("city", c.Name), ports.F("references", len(resp.References)))
	return resp, nil
}
