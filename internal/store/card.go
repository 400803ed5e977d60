package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// CardFilter narrows card listings. A nil DeckID lists cards of every deck.
type CardFilter struct {
	DeckID *int64
}

// CardStore defines the interface for card persistence.
//
// Creating a card and its initial review state must happen in one
// transaction; services do this with RunInTransaction and WithTx on both
// CardStore and ReviewStateStore.
type CardStore interface {
	// Create inserts the card row only and sets its ID and CreatedAt.
	// Returns ErrInvalidEntity if the deck or template does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Card, error)

	// List returns one page of cards joined with their review states, ordered by card ID.
	List(ctx context.Context, filter CardFilter, page domain.Page) ([]domain.DueCard, error)

	// Update writes deck, template, front and back. The review state is never
	// touched. Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes the card, its review state and its media links.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id int64) error

	// ReplaceMedia sets the card's media links to exactly mediaIDs.
	ReplaceMedia(ctx context.Context, cardID int64, mediaIDs []int64) error

	// MediaIDs returns the IDs of the media linked to the card, ascending.
	MediaIDs(ctx context.Context, cardID int64) ([]int64, error)

	WithTx(tx *sql.Tx) CardStore
}
