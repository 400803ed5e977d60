package service

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

// CreateCardParams holds the fields of a new card.
type CreateCardParams struct {
	DeckID     int64
	TemplateID int64
	Front      string
	Back       string
}

// CardQuery filters card listings. With Learn set, only cards due at or
// before the current time are returned, earliest due first.
type CardQuery struct {
	DeckID *int64
	Learn  bool
}

// CardService manages cards. Review states are created here together with
// their card but are only ever changed by the scheduler.
type CardService interface {
	// Create inserts the card, its initial review state (New, due at creation)
	// and its media links in one transaction.
	Create(ctx context.Context, params CreateCardParams) (*domain.Card, error)

	Get(ctx context.Context, id int64) (*domain.Card, error)
	List(ctx context.Context, query CardQuery, page domain.Page) ([]domain.DueCard, error)

	// Update applies a partial update. Changing front or back rebuilds the
	// card's media links in the same transaction.
	Update(ctx context.Context, id int64, patch domain.CardPatch) (*domain.Card, error)

	// Delete removes the card with its review state and media links.
	Delete(ctx context.Context, id int64) error

	// ReviewState returns the card's current review state.
	ReviewState(ctx context.Context, id int64) (*domain.ReviewState, error)
}

// CardServiceOption customizes a CardService.
type CardServiceOption func(*cardServiceImpl)

// WithClock sets the time source used for "due now" listings.
func WithClock(now func() time.Time) CardServiceOption {
	return func(s *cardServiceImpl) {
		s.now = now
	}
}

type cardServiceImpl struct {
	db     store.TxBeginner
	cards  store.CardStore
	states store.ReviewStateStore
	media  store.MediaStore
	now    func() time.Time
	logger *slog.Logger
}

var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	db store.TxBeginner,
	cards store.CardStore,
	states store.ReviewStateStore,
	media store.MediaStore,
	logger *slog.Logger,
	opts ...CardServiceOption,
) (CardService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if cards == nil || states == nil || media == nil {
		return nil, fmt.Errorf("%w: card, review state and media stores are required", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &cardServiceImpl{
		db:     db,
		cards:  cards,
		states: states,
		media:  media,
		now:    time.Now,
		logger: logger.With(slog.String("component", "card_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *cardServiceImpl) Create(ctx context.Context, params CreateCardParams) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(params.DeckID, params.TemplateID, params.Front, params.Back)
	if err != nil {
		return nil, NewServiceError("card", "create", "invalid card", err)
	}
	refs := card.MediaIDs()

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)

		if err := checkMediaRefs(ctx, s.media.WithTx(tx), refs); err != nil {
			return err
		}
		if err := txCards.Create(ctx, card); err != nil {
			return err
		}

		state := domain.NewReviewState(card.ID, card.CreatedAt)
		if err := s.states.WithTx(tx).Create(ctx, &state); err != nil {
			return fmt.Errorf("failed to create review state: %w", err)
		}

		if len(refs) > 0 {
			if err := txCards.ReplaceMedia(ctx, card.ID, refs); err != nil {
				return fmt.Errorf("failed to link media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("card creation rolled back", slog.String("error", err.Error()))
		return nil, NewServiceError("card", "create", "failed to save card", err)
	}

	log.Info("card created with review state",
		slog.Int64("card_id", card.ID),
		slog.Int64("deck_id", card.DeckID),
		slog.Int("media_refs", len(refs)))
	return card, nil
}

func (s *cardServiceImpl) Get(ctx context.Context, id int64) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("card", "get", "failed to load card", err)
	}
	return card, nil
}

func (s *cardServiceImpl) List(ctx context.Context, query CardQuery, page domain.Page) ([]domain.DueCard, error) {
	if err := page.Validate(); err != nil {
		return nil, NewServiceError("card", "list", "invalid page", err)
	}

	var (
		cards []domain.DueCard
		err   error
	)
	if query.Learn {
		cards, err = s.states.ListDue(ctx, query.DeckID, s.now(), page)
	} else {
		cards, err = s.cards.List(ctx, store.CardFilter{DeckID: query.DeckID}, page)
	}
	if err != nil {
		return nil, NewServiceError("card", "list", "failed to list cards", err)
	}
	return cards, nil
}

func (s *cardServiceImpl) Update(ctx context.Context, id int64, patch domain.CardPatch) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, NewServiceError("card", "update", "invalid patch", err)
	}

	var updated domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)

		current, err := txCards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(*current)

		var refs []int64
		if patch.TouchesText() {
			refs = updated.MediaIDs()
			if err := checkMediaRefs(ctx, s.media.WithTx(tx), refs); err != nil {
				return err
			}
		}

		if err := txCards.Update(ctx, &updated); err != nil {
			return err
		}
		if patch.TouchesText() {
			if err := txCards.ReplaceMedia(ctx, id, refs); err != nil {
				return fmt.Errorf("failed to relink media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, NewServiceError("card", "update", "failed to update card", err)
	}

	log.Debug("card updated", slog.Int64("card_id", id), slog.Bool("text_changed", patch.TouchesText()))
	return &updated, nil
}

func (s *cardServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.cards.Delete(ctx, id); err != nil {
		return NewServiceError("card", "delete", "failed to delete card", err)
	}
	return nil
}

func (s *cardServiceImpl) ReviewState(ctx context.Context, id int64) (*domain.ReviewState, error) {
	state, err := s.states.Get(ctx, id)
	if err != nil {
		return nil, NewServiceError("card", "review_state", "failed to load review state", err)
	}
	return state, nil
}

// checkMediaRefs fails with a validation error naming every referenced media
// ID that does not exist.
func checkMediaRefs(ctx context.Context, media store.MediaStore, refs []int64) error {
	if len(refs) == 0 {
		return nil
	}
	found, err := media.GetMany(ctx, refs)
	if err != nil {
		return fmt.Errorf("failed to resolve media references: %w", err)
	}

	var missing []int64
	for _, id := range refs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %w: %v", domain.ErrValidation, ErrUnknownMedia, missing)
	}
	return nil
}
