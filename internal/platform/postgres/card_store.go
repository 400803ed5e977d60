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

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create.
// Returns store.ErrInvalidEntity if the deck or template does not exist.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO card (deck_id, template_id, front, back)
		VALUES ($1, $2, $3, $4)
		RETURNING id, create_at
	`
	err := s.db.QueryRowContext(ctx, query, card.DeckID, card.TemplateID, card.Front, card.Back).
		Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during card creation",
				slog.Int64("deck_id", card.DeckID),
				slog.Int64("template_id", card.TemplateID))
			return fmt.Errorf("%w: deck %d or template %d not found",
				store.ErrInvalidEntity, card.DeckID, card.TemplateID)
		}
		log.Error("failed to create card", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("card created successfully",
		slog.Int64("card_id", card.ID),
		slog.Int64("deck_id", card.DeckID))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, template_id, front, back, create_at
		FROM card
		WHERE id = $1
	`
	var c domain.Card
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.DeckID, &c.TemplateID, &c.Front, &c.Back, &c.CreatedAt)
	if err != nil {
		log.Debug("failed to get card", slog.Int64("card_id", id), slog.String("error", err.Error()))
		return nil, mapEntityError(err, store.ErrCardNotFound)
	}
	return &c, nil
}

// List implements store.CardStore.List
func (s *PostgresCardStore) List(ctx context.Context, filter store.CardFilter, page domain.Page) ([]domain.DueCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + dueCardColumns + `
		FROM card c
		JOIN fsrs f ON f.card_id = c.id
		WHERE ($1::bigint IS NULL OR c.deck_id = $1)
		ORDER BY c.id
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, nullableID(filter.DeckID), page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	cards, err := scanDueCards(rows)
	if err != nil {
		log.Error("failed to scan cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return cards, nil
}

// Update implements store.CardStore.Update
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE card
		SET deck_id = $2, template_id = $3, front = $4, back = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, card.ID, card.DeckID, card.TemplateID, card.Front, card.Back)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: deck %d or template %d not found",
				store.ErrInvalidEntity, card.DeckID, card.TemplateID)
		}
		log.Error("failed to update card", slog.Int64("card_id", card.ID), slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Debug("card updated", slog.Int64("card_id", card.ID))
	return nil
}

// Delete implements store.CardStore.Delete.
// The review state and media links are removed by ON DELETE CASCADE.
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM card WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card", slog.Int64("card_id", id), slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Info("card deleted", slog.Int64("card_id", id))
	return nil
}

// ReplaceMedia implements store.CardStore.ReplaceMedia.
// It should run in the same transaction as the card write it belongs to.
func (s *PostgresCardStore) ReplaceMedia(ctx context.Context, cardID int64, mediaIDs []int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM card_media WHERE card_id = $1`, cardID); err != nil {
		return MapError(err)
	}

	for _, mediaID := range mediaIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO card_media (card_id, media_id) VALUES ($1, $2)`,
			cardID, mediaID)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: media %d not found", store.ErrInvalidEntity, mediaID)
			}
			return MapError(err)
		}
	}
	return nil
}

// MediaIDs implements store.CardStore.MediaIDs
func (s *PostgresCardStore) MediaIDs(ctx context.Context, cardID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT media_id FROM card_media WHERE card_id = $1 ORDER BY media_id`, cardID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan media id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}
