package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// DeckStore defines the interface for deck persistence.
type DeckStore interface {
	// Create inserts the deck and sets its ID and CreatedAt from the database.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Deck, error)

	// List returns one page of decks ordered by ID.
	List(ctx context.Context, page domain.Page) ([]domain.Deck, error)

	// Update writes the deck's mutable fields. Returns ErrDeckNotFound if the
	// deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes the deck. Its cards, their review states and media links
	// are removed by ON DELETE CASCADE constraints.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a DeckStore bound to tx.
	WithTx(tx *sql.Tx) DeckStore
}
