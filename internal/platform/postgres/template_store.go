package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresTemplateStore implements store.TemplateStore on PostgreSQL.
type PostgresTemplateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTemplateStore creates a PostgresTemplateStore.
// If logger is nil, a default logger will be used.
func NewPostgresTemplateStore(db store.DBTX, logger *slog.Logger) *PostgresTemplateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTemplateStore{
		db:     db,
		logger: logger.With(slog.String("component", "template_store")),
	}
}

var _ store.TemplateStore = (*PostgresTemplateStore)(nil)

func (s *PostgresTemplateStore) Create(ctx context.Context, t *domain.Template) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := t.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO template (name, content) VALUES ($1, $2) RETURNING id, create_at`
	if err := s.db.QueryRowContext(ctx, query, t.Name, t.Content).Scan(&t.ID, &t.CreatedAt); err != nil {
		log.Error("failed to create template", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("template created successfully", slog.Int64("template_id", t.ID))
	return nil
}

func (s *PostgresTemplateStore) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	query := `SELECT id, name, content, create_at FROM template WHERE id = $1`

	var t domain.Template
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Content, &t.CreatedAt); err != nil {
		return nil, mapEntityError(err, store.ErrTemplateNotFound)
	}
	return &t, nil
}

func (s *PostgresTemplateStore) List(ctx context.Context, page domain.Page) ([]domain.Template, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, content, create_at
		FROM template
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list templates", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	templates := make([]domain.Template, 0)
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return templates, nil
}

func (s *PostgresTemplateStore) Update(ctx context.Context, t *domain.Template) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := t.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE template SET name = $2, content = $3 WHERE id = $1`,
		t.ID, t.Name, t.Content)
	if err != nil {
		log.Error("failed to update template", slog.Int64("template_id", t.ID), slog.String("error", err.Error()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTemplateNotFound)
}

func (s *PostgresTemplateStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM template WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete template", slog.Int64("template_id", id), slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrTemplateNotFound); err != nil {
		return err
	}

	log.Info("template deleted", slog.Int64("template_id", id))
	return nil
}

func (s *PostgresTemplateStore) WithTx(tx *sql.Tx) store.TemplateStore {
	return &PostgresTemplateStore{db: tx, logger: s.logger}
}
