package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// MediaStore defines the interface for media metadata persistence. The media
// files themselves are not managed here.
type MediaStore interface {
	Create(ctx context.Context, media *domain.Media) error
	GetByID(ctx context.Context, id int64) (*domain.Media, error)

	// GetMany returns the media rows among ids that exist, keyed by ID.
	// Missing IDs are simply absent from the result.
	GetMany(ctx context.Context, ids []int64) (map[int64]domain.Media, error)

	List(ctx context.Context, page domain.Page) ([]domain.Media, error)
	Update(ctx context.Context, media *domain.Media) error

	// Delete removes the media row and its card links. Cards are untouched.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) MediaStore
}
