package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresReviewStateStore implements store.ReviewStateStore on the fsrs table.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a PostgresReviewStateStore.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

// Create implements store.ReviewStateStore.Create
func (s *PostgresReviewStateStore) Create(ctx context.Context, r *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := r.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO fsrs (card_id, due, stability, difficulty, scheduled_days,
			learning_steps, reps, lapses, state, last_review, elapsed_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.CardID,
		r.Due,
		r.Stability,
		r.Difficulty,
		r.ScheduledDays,
		r.LearningSteps,
		r.Reps,
		r.Lapses,
		int16(r.State),
		nullTime(r.LastReview),
		r.ElapsedDays,
	)
	if err != nil {
		log.Error("failed to create review state", slog.Int64("card_id", r.CardID), slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// Get implements store.ReviewStateStore.Get
func (s *PostgresReviewStateStore) Get(ctx context.Context, cardID int64) (*domain.ReviewState, error) {
	query := `SELECT ` + reviewStateColumns + ` FROM fsrs f WHERE f.card_id = $1`
	r, err := scanReviewState(s.db.QueryRowContext(ctx, query, cardID))
	if err != nil {
		return nil, mapEntityError(err, store.ErrReviewStateNotFound)
	}
	return r, nil
}

// GetForUpdate implements store.ReviewStateStore.GetForUpdate.
// The row lock is released when the enclosing transaction commits or rolls back.
func (s *PostgresReviewStateStore) GetForUpdate(ctx context.Context, cardID int64) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewStateColumns + ` FROM fsrs f WHERE f.card_id = $1 FOR UPDATE`
	r, err := scanReviewState(s.db.QueryRowContext(ctx, query, cardID))
	if err != nil {
		log.Debug("failed to lock review state", slog.Int64("card_id", cardID), slog.String("error", err.Error()))
		return nil, mapEntityError(err, store.ErrReviewStateNotFound)
	}
	return r, nil
}

// Replace implements store.ReviewStateStore.Replace
func (s *PostgresReviewStateStore) Replace(ctx context.Context, r *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := r.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE fsrs
		SET due = $2,
			stability = $3,
			difficulty = $4,
			scheduled_days = $5,
			learning_steps = $6,
			reps = $7,
			lapses = $8,
			state = $9,
			last_review = $10,
			elapsed_days = $11
		WHERE card_id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		r.CardID,
		r.Due,
		r.Stability,
		r.Difficulty,
		r.ScheduledDays,
		r.LearningSteps,
		r.Reps,
		r.Lapses,
		int16(r.State),
		nullTime(r.LastReview),
		r.ElapsedDays,
	)
	if err != nil {
		log.Error("failed to replace review state", slog.Int64("card_id", r.CardID), slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrReviewStateNotFound); err != nil {
		return err
	}

	log.Debug("review state replaced",
		slog.Int64("card_id", r.CardID),
		slog.Time("due", r.Due),
		slog.String("state", r.State.String()))
	return nil
}

// ListDue implements store.ReviewStateStore.ListDue
func (s *PostgresReviewStateStore) ListDue(
	ctx context.Context,
	deckID *int64,
	asOf time.Time,
	page domain.Page,
) ([]domain.DueCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + dueCardColumns + `
		FROM card c
		JOIN fsrs f ON f.card_id = c.id
		WHERE f.due <= $2
			AND ($1::bigint IS NULL OR c.deck_id = $1)
		ORDER BY f.due, c.id
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query, nullableID(deckID), asOf, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to query due cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	cards, err := scanDueCards(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read due cards: %w", MapError(err))
	}
	return cards, nil
}

// WithTx implements store.ReviewStateStore.WithTx
func (s *PostgresReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return &PostgresReviewStateStore{db: tx, logger: s.logger}
}
