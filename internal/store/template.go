package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// TemplateStore defines the interface for template persistence.
type TemplateStore interface {
	Create(ctx context.Context, template *domain.Template) error
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	List(ctx context.Context, page domain.Page) ([]domain.Template, error)
	Update(ctx context.Context, template *domain.Template) error

	// Delete removes the template and, by cascade, every card that uses it.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) TemplateStore
}
