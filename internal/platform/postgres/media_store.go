package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresMediaStore implements store.MediaStore on PostgreSQL.
type PostgresMediaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMediaStore creates a PostgresMediaStore.
// If logger is nil, a default logger will be used.
func NewPostgresMediaStore(db store.DBTX, logger *slog.Logger) *PostgresMediaStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMediaStore{
		db:     db,
		logger: logger.With(slog.String("component", "media_store")),
	}
}

var _ store.MediaStore = (*PostgresMediaStore)(nil)

const mediaColumns = `id, mime, size, path, create_at`

func scanMedia(row rowScanner) (domain.Media, error) {
	var m domain.Media
	err := row.Scan(&m.ID, &m.Mime, &m.Size, &m.Path, &m.CreatedAt)
	return m, err
}

func (s *PostgresMediaStore) Create(ctx context.Context, m *domain.Media) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := m.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO media (mime, size, path) VALUES ($1, $2, $3) RETURNING id, create_at`
	if err := s.db.QueryRowContext(ctx, query, m.Mime, m.Size, m.Path).Scan(&m.ID, &m.CreatedAt); err != nil {
		log.Error("failed to create media", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("media created successfully", slog.Int64("media_id", m.ID), slog.String("mime", m.Mime))
	return nil
}

func (s *PostgresMediaStore) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	m, err := scanMedia(s.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrMediaNotFound)
	}
	return &m, nil
}

func (s *PostgresMediaStore) GetMany(ctx context.Context, ids []int64) (map[int64]domain.Media, error) {
	result := make(map[int64]domain.Media, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		result[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return result, nil
}

func (s *PostgresMediaStore) List(ctx context.Context, page domain.Page) ([]domain.Media, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + mediaColumns + ` FROM media ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := s.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list media", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	media := make([]domain.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return media, nil
}

func (s *PostgresMediaStore) Update(ctx context.Context, m *domain.Media) error {
	if err := m.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE media SET mime = $2, size = $3, path = $4 WHERE id = $1`,
		m.ID, m.Mime, m.Size, m.Path)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrMediaNotFound)
}

func (s *PostgresMediaStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete media", slog.Int64("media_id", id), slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrMediaNotFound); err != nil {
		return err
	}

	log.Info("media deleted", slog.Int64("media_id", id))
	return nil
}

func (s *PostgresMediaStore) WithTx(tx *sql.Tx) store.MediaStore {
	return &PostgresMediaStore{db: tx, logger: s.logger}
}
