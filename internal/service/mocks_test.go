package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockDeckStore mocks store.DeckStore. WithTx returns the same mock.
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	return m.Called(ctx, deck).Error(0)
}

func (m *MockDeckStore) GetByID(ctx context.Context, id int64) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) List(ctx context.Context, page domain.Page) ([]domain.Deck, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deck), args.Error(1)
}

func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	return m.Called(ctx, deck).Error(0)
}

func (m *MockDeckStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return m }

// MockCardStore mocks store.CardStore.
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) List(
	ctx context.Context,
	filter store.CardFilter,
	page domain.Page,
) ([]domain.DueCard, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueCard), args.Error(1)
}

func (m *MockCardStore) Update(ctx context.Context, card *domain.Card) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockCardStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCardStore) ReplaceMedia(ctx context.Context, cardID int64, mediaIDs []int64) error {
	return m.Called(ctx, cardID, mediaIDs).Error(0)
}

func (m *MockCardStore) MediaIDs(ctx context.Context, cardID int64) ([]int64, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore { return m }

// MockReviewStateStore mocks store.ReviewStateStore.
type MockReviewStateStore struct {
	mock.Mock
}

func (m *MockReviewStateStore) Create(ctx context.Context, state *domain.ReviewState) error {
	return m.Called(ctx, state).Error(0)
}

func (m *MockReviewStateStore) Get(ctx context.Context, cardID int64) (*domain.ReviewState, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewState), args.Error(1)
}

func (m *MockReviewStateStore) GetForUpdate(ctx context.Context, cardID int64) (*domain.ReviewState, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewState), args.Error(1)
}

func (m *MockReviewStateStore) Replace(ctx context.Context, state *domain.ReviewState) error {
	return m.Called(ctx, state).Error(0)
}

func (m *MockReviewStateStore) ListDue(
	ctx context.Context,
	deckID *int64,
	asOf time.Time,
	page domain.Page,
) ([]domain.DueCard, error) {
	args := m.Called(ctx, deckID, asOf, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueCard), args.Error(1)
}

func (m *MockReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore { return m }

// MockMediaStore mocks store.MediaStore.
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Create(ctx context.Context, media *domain.Media) error {
	return m.Called(ctx, media).Error(0)
}

func (m *MockMediaStore) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Media), args.Error(1)
}

func (m *MockMediaStore) GetMany(ctx context.Context, ids []int64) (map[int64]domain.Media, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Media), args.Error(1)
}

func (m *MockMediaStore) List(ctx context.Context, page domain.Page) ([]domain.Media, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Media), args.Error(1)
}

func (m *MockMediaStore) Update(ctx context.Context, media *domain.Media) error {
	return m.Called(ctx, media).Error(0)
}

func (m *MockMediaStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMediaStore) WithTx(tx *sql.Tx) store.MediaStore { return m }

// MockTemplateStore mocks store.TemplateStore.
type MockTemplateStore struct {
	mock.Mock
}

func (m *MockTemplateStore) Create(ctx context.Context, t *domain.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateStore) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *MockTemplateStore) List(ctx context.Context, page domain.Page) ([]domain.Template, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Template), args.Error(1)
}

func (m *MockTemplateStore) Update(ctx context.Context, t *domain.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTemplateStore) WithTx(tx *sql.Tx) store.TemplateStore { return m }
