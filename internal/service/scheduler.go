package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// GradeResult is the outcome of a committed grade submission.
type GradeResult struct {
	State domain.ReviewState `json:"fsrs"`
	Log   domain.ReviewLog   `json:"log"`
}

// Scheduler is the only writer of review states after card creation.
type Scheduler interface {
	// SubmitGrade records a grade for a card at reviewTime. The read, the
	// scheduling computation and the write happen under a row lock, so
	// concurrent grades for the same card are applied one after the other.
	SubmitGrade(ctx context.Context, cardID int64, grade domain.Grade, reviewTime time.Time) (*GradeResult, error)
}

type schedulerImpl struct {
	db      store.TxBeginner
	states  store.ReviewStateStore
	srs     srs.Service
	emitter events.EventEmitter
	logger  *slog.Logger
}

var _ Scheduler = (*schedulerImpl)(nil)

// NewScheduler creates a Scheduler. The emitter may be nil, in which case
// no review events are published.
func NewScheduler(
	db store.TxBeginner,
	states store.ReviewStateStore,
	srsService srs.Service,
	emitter events.EventEmitter,
	logger *slog.Logger,
) Scheduler {
	if db == nil {
		panic("db cannot be nil")
	}
	if states == nil {
		panic("states cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &schedulerImpl{
		db:      db,
		states:  states,
		srs:     srsService,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "scheduler")),
	}
}

func (s *schedulerImpl) SubmitGrade(
	ctx context.Context,
	cardID int64,
	grade domain.Grade,
	reviewTime time.Time,
) (*GradeResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !grade.IsValid() {
		return nil, NewServiceError("scheduler", "grade", "invalid grade",
			fmt.Errorf("%w: %d", domain.ErrInvalidGrade, int(grade)))
	}
	if reviewTime.IsZero() {
		return nil, NewServiceError("scheduler", "grade", "invalid review time",
			fmt.Errorf("%w: %w", domain.ErrValidation, srs.ErrInvalidReviewTime))
	}

	var result GradeResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		states := s.states.WithTx(tx)

		current, err := states.GetForUpdate(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrReviewStateNotFound) {
				return fmt.Errorf("%w: %d", store.ErrCardNotFound, cardID)
			}
			return fmt.Errorf("failed to lock review state: %w", err)
		}

		next, reviewLog, err := s.srs.Schedule(*current, grade, reviewTime)
		if err != nil {
			return fmt.Errorf("failed to schedule card: %w", err)
		}

		if err := states.Replace(ctx, &next); err != nil {
			return fmt.Errorf("failed to save review state: %w", err)
		}

		result = GradeResult{State: next, Log: reviewLog}
		return nil
	})
	if err != nil {
		log.Warn("grade not applied",
			slog.Int64("card_id", cardID),
			slog.String("grade", grade.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("scheduler", "grade", "failed to apply grade", err)
	}

	log.Info("grade applied",
		slog.Int64("card_id", cardID),
		slog.String("grade", grade.String()),
		slog.String("state", result.State.State.String()),
		slog.Time("due", result.State.Due))

	s.publish(ctx, result)
	return &result, nil
}

// publish emits the review event after commit. A failing handler does not
// undo a committed grade, so errors are only logged.
func (s *schedulerImpl) publish(ctx context.Context, result GradeResult) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewReviewLoggedEvent(result.Log, result.State)
	if err != nil {
		log.Error("failed to build review event", slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit review event",
			slog.Int64("card_id", result.State.CardID),
			slog.String("error", err.Error()))
	}
}

// DueQuery lists cards eligible for review.
type DueQuery interface {
	// DueCards returns cards whose due time is at or before asOf, ordered by
	// due time and then card ID. A nil deckID spans all decks.
	DueCards(ctx context.Context, deckID *int64, asOf time.Time, page domain.Page) ([]domain.DueCard, error)
}

type dueQueryImpl struct {
	states store.ReviewStateStore
	logger *slog.Logger
}

// NewDueQuery creates a DueQuery over the review state store.
func NewDueQuery(states store.ReviewStateStore, logger *slog.Logger) DueQuery {
	if states == nil {
		panic("states cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &dueQueryImpl{
		states: states,
		logger: logger.With(slog.String("component", "due_query")),
	}
}

func (q *dueQueryImpl) DueCards(
	ctx context.Context,
	deckID *int64,
	asOf time.Time,
	page domain.Page,
) ([]domain.DueCard, error) {
	if err := page.Validate(); err != nil {
		return nil, NewServiceError("due_query", "list", "invalid page", err)
	}
	if asOf.IsZero() {
		return nil, NewServiceError("due_query", "list", "as-of time is required", domain.ErrValidation)
	}

	cards, err := q.states.ListDue(ctx, deckID, asOf, page)
	if err != nil {
		return nil, NewServiceError("due_query", "list", "failed to list due cards", err)
	}

	logger.FromContextOrDefault(ctx, q.logger).Debug("due cards listed",
		slog.Int("count", len(cards)),
		slog.Time("as_of", asOf))
	return cards, nil
}
