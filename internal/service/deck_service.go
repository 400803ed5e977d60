package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// DeckService manages decks.
type DeckService interface {
	Create(ctx context.Context, name string) (*domain.Deck, error)
	Get(ctx context.Context, id int64) (*domain.Deck, error)
	List(ctx context.Context, page domain.Page) ([]domain.Deck, error)
	Update(ctx context.Context, id int64, patch domain.DeckPatch) (*domain.Deck, error)

	// Delete removes the deck together with its cards and their review states.
	Delete(ctx context.Context, id int64) error
}

type deckServiceImpl struct {
	decks  store.DeckStore
	logger *slog.Logger
}

var _ DeckService = (*deckServiceImpl)(nil)

// NewDeckService creates a DeckService. It returns an error if decks is nil.
func NewDeckService(decks store.DeckStore, logger *slog.Logger) (DeckService, error) {
	if decks == nil {
		return nil, fmt.Errorf("%w: deck store cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &deckServiceImpl{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_service")),
	}, nil
}

func (s *deckServiceImpl) Create(ctx context.Context, name string) (*domain.Deck, error) {
	deck, err := domain.NewDeck(name)
	if err != nil {
		return nil, NewServiceError("deck", "create", "invalid deck", err)
	}
	if err := s.decks.Create(ctx, deck); err != nil {
		return nil, NewServiceError("deck", "create", "failed to save deck", err)
	}
	return deck, nil
}

func (s *deckServiceImpl) Get(ctx context.Context, id int64) (*domain.Deck, error) {
	deck, err := s.decks.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("deck", "get", "failed to load deck", err)
	}
	return deck, nil
}

func (s *deckServiceImpl) List(ctx context.Context, page domain.Page) ([]domain.Deck, error) {
	if err := page.Validate(); err != nil {
		return nil, NewServiceError("deck", "list", "invalid page", err)
	}
	decks, err := s.decks.List(ctx, page)
	if err != nil {
		return nil, NewServiceError("deck", "list", "failed to list decks", err)
	}
	return decks, nil
}

func (s *deckServiceImpl) Update(ctx context.Context, id int64, patch domain.DeckPatch) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, NewServiceError("deck", "update", "invalid patch", err)
	}

	current, err := s.decks.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("deck", "update", "failed to load deck", err)
	}

	updated := patch.Apply(*current)
	if err := s.decks.Update(ctx, &updated); err != nil {
		return nil, NewServiceError("deck", "update", "failed to save deck", err)
	}

	log.Debug("deck updated", slog.Int64("deck_id", id))
	return &updated, nil
}

func (s *deckServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.decks.Delete(ctx, id); err != nil {
		return NewServiceError("deck", "delete", "failed to delete deck", err)
	}
	return nil
}
