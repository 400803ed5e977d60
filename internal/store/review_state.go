package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// ReviewStateStore persists the one-to-one review state of each card.
//
// Apart from Create, which runs together with card creation, the only writer
// is the scheduler through Replace.
type ReviewStateStore interface {
	// Create inserts the initial state of a new card.
	Create(ctx context.Context, state *domain.ReviewState) error

	// Get returns ErrReviewStateNotFound if no state exists for cardID.
	Get(ctx context.Context, cardID int64) (*domain.ReviewState, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends. Concurrent callers for the same card block, so it must
	// run inside a transaction.
	GetForUpdate(ctx context.Context, cardID int64) (*domain.ReviewState, error)

	// Replace overwrites every field of the row keyed by state.CardID.
	// Returns ErrReviewStateNotFound if the row does not exist.
	Replace(ctx context.Context, state *domain.ReviewState) error

	// ListDue returns the cards of deckID (all decks when nil) whose due time
	// is at or before asOf, ordered by due then card ID. The page is read in a
	// single statement and therefore reflects one snapshot.
	ListDue(ctx context.Context, deckID *int64, asOf time.Time, page domain.Page) ([]domain.DueCard, error)

	WithTx(tx *sql.Tx) ReviewStateStore
}
