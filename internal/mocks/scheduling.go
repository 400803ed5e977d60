package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

// GradeCall records one SubmitGrade invocation.
type GradeCall struct {
	CardID     int64
	Grade      domain.Grade
	ReviewTime time.Time
}

// GradeCalls tracks SubmitGrade invocations.
type GradeCalls struct {
	mu    sync.Mutex
	calls []GradeCall
}

// Count returns the number of recorded calls.
func (c *GradeCalls) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// All returns a copy of the recorded calls.
func (c *GradeCalls) All() []GradeCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]GradeCall(nil), c.calls...)
}

func (c *GradeCalls) add(call GradeCall) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	c.mu.Unlock()
}

// MockScheduler implements service.Scheduler for testing.
type MockScheduler struct {
	SubmitGradeFn func(ctx context.Context, cardID int64, grade domain.Grade, reviewTime time.Time) (*service.GradeResult, error)

	// Defaults returned when SubmitGradeFn is nil.
	Result *service.GradeResult
	Err    error

	SubmitGradeCalls GradeCalls
}

var _ service.Scheduler = (*MockScheduler)(nil)

// SubmitGrade implements service.Scheduler.
func (m *MockScheduler) SubmitGrade(
	ctx context.Context,
	cardID int64,
	grade domain.Grade,
	reviewTime time.Time,
) (*service.GradeResult, error) {
	m.SubmitGradeCalls.add(GradeCall{CardID: cardID, Grade: grade, ReviewTime: reviewTime})
	if m.SubmitGradeFn != nil {
		return m.SubmitGradeFn(ctx, cardID, grade, reviewTime)
	}
	return m.Result, m.Err
}

// DueCall records one DueCards invocation.
type DueCall struct {
	DeckID *int64
	AsOf   time.Time
	Page   domain.Page
}

// MockDueQuery implements service.DueQuery for testing. Without DueCardsFn
// it pages through Cards.
type MockDueQuery struct {
	DueCardsFn func(ctx context.Context, deckID *int64, asOf time.Time, page domain.Page) ([]domain.DueCard, error)

	Cards []domain.DueCard
	Err   error

	mu    sync.Mutex
	calls []DueCall
}

var _ service.DueQuery = (*MockDueQuery)(nil)

// DueCards implements service.DueQuery.
func (m *MockDueQuery) DueCards(
	ctx context.Context,
	deckID *int64,
	asOf time.Time,
	page domain.Page,
) ([]domain.DueCard, error) {
	m.mu.Lock()
	m.calls = append(m.calls, DueCall{DeckID: deckID, AsOf: asOf, Page: page})
	m.mu.Unlock()

	if m.DueCardsFn != nil {
		return m.DueCardsFn(ctx, deckID, asOf, page)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	start := page.Offset()
	if start >= len(m.Cards) {
		return []domain.DueCard{}, nil
	}
	end := start + page.Limit()
	if end > len(m.Cards) {
		end = len(m.Cards)
	}
	return append([]domain.DueCard(nil), m.Cards[start:end]...), nil
}

// Calls returns a copy of the recorded DueCards calls.
func (m *MockDueQuery) Calls() []DueCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DueCall(nil), m.calls...)
}

// MockCardRenderer implements service.CardRenderer for testing. Without
// function fields it renders "front:<Front>" and "back:<Back>".
type MockCardRenderer struct {
	RenderFn    func(ctx context.Context, card *domain.Card) (domain.RenderedCard, error)
	RenderAllFn func(ctx context.Context, cards []domain.Card) ([]domain.RenderedCard, error)

	Err error
}

var _ service.CardRenderer = (*MockCardRenderer)(nil)

// Render implements service.CardRenderer.
func (m *MockCardRenderer) Render(ctx context.Context, card *domain.Card) (domain.RenderedCard, error) {
	if m.RenderFn != nil {
		return m.RenderFn(ctx, card)
	}
	if m.Err != nil {
		return domain.RenderedCard{}, m.Err
	}
	return domain.RenderedCard{Front: "front:" + card.Front, Back: "back:" + card.Back}, nil
}

// RenderAll implements service.CardRenderer.
func (m *MockCardRenderer) RenderAll(ctx context.Context, cards []domain.Card) ([]domain.RenderedCard, error) {
	if m.RenderAllFn != nil {
		return m.RenderAllFn(ctx, cards)
	}
	out := make([]domain.RenderedCard, 0, len(cards))
	for i := range cards {
		r, err := m.Render(ctx, &cards[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
