package mocks

import (
	"context"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MockDeckService implements service.DeckService for testing.
type MockDeckService struct {
	CreateFn func(ctx context.Context, name string) (*domain.Deck, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Deck, error)
	ListFn   func(ctx context.Context, page domain.Page) ([]domain.Deck, error)
	UpdateFn func(ctx context.Context, id int64, patch domain.DeckPatch) (*domain.Deck, error)
	DeleteFn func(ctx context.Context, id int64) error

	DefaultError error
}

var _ service.DeckService = (*MockDeckService)(nil)

func (m *MockDeckService) Create(ctx context.Context, name string) (*domain.Deck, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name)
	}
	return nil, m.DefaultError
}

func (m *MockDeckService) Get(ctx context.Context, id int64) (*domain.Deck, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

func (m *MockDeckService) List(ctx context.Context, page domain.Page) ([]domain.Deck, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return nil, m.DefaultError
}

func (m *MockDeckService) Update(ctx context.Context, id int64, patch domain.DeckPatch) (*domain.Deck, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, m.DefaultError
}

func (m *MockDeckService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// MockTemplateService implements service.TemplateService for testing.
type MockTemplateService struct {
	CreateFn func(ctx context.Context, name, content string) (*domain.Template, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Template, error)
	ListFn   func(ctx context.Context, page domain.Page) ([]domain.Template, error)
	UpdateFn func(ctx context.Context, id int64, patch domain.TemplatePatch) (*domain.Template, error)
	DeleteFn func(ctx context.Context, id int64) error

	DefaultError error
}

var _ service.TemplateService = (*MockTemplateService)(nil)

func (m *MockTemplateService) Create(ctx context.Context, name, content string) (*domain.Template, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name, content)
	}
	return nil, m.DefaultError
}

func (m *MockTemplateService) Get(ctx context.Context, id int64) (*domain.Template, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

func (m *MockTemplateService) List(ctx context.Context, page domain.Page) ([]domain.Template, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return nil, m.DefaultError
}

func (m *MockTemplateService) Update(
	ctx context.Context,
	id int64,
	patch domain.TemplatePatch,
) (*domain.Template, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, m.DefaultError
}

func (m *MockTemplateService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// MockMediaService implements service.MediaService for testing.
type MockMediaService struct {
	CreateFn func(ctx context.Context, path, mime string, size int64) (*domain.Media, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Media, error)
	ListFn   func(ctx context.Context, page domain.Page) ([]domain.Media, error)
	UpdateFn func(ctx context.Context, id int64, patch domain.MediaPatch) (*domain.Media, error)
	DeleteFn func(ctx context.Context, id int64) error

	DefaultError error
}

var _ service.MediaService = (*MockMediaService)(nil)

func (m *MockMediaService) Create(ctx context.Context, path, mime string, size int64) (*domain.Media, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, path, mime, size)
	}
	return nil, m.DefaultError
}

func (m *MockMediaService) Get(ctx context.Context, id int64) (*domain.Media, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

func (m *MockMediaService) List(ctx context.Context, page domain.Page) ([]domain.Media, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return nil, m.DefaultError
}

func (m *MockMediaService) Update(ctx context.Context, id int64, patch domain.MediaPatch) (*domain.Media, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, m.DefaultError
}

func (m *MockMediaService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// MockCardService implements service.CardService for testing.
type MockCardService struct {
	CreateFn      func(ctx context.Context, params service.CreateCardParams) (*domain.Card, error)
	GetFn         func(ctx context.Context, id int64) (*domain.Card, error)
	ListFn        func(ctx context.Context, query service.CardQuery, page domain.Page) ([]domain.DueCard, error)
	UpdateFn      func(ctx context.Context, id int64, patch domain.CardPatch) (*domain.Card, error)
	DeleteFn      func(ctx context.Context, id int64) error
	ReviewStateFn func(ctx context.Context, id int64) (*domain.ReviewState, error)

	DefaultError error
}

var _ service.CardService = (*MockCardService)(nil)

func (m *MockCardService) Create(ctx context.Context, params service.CreateCardParams) (*domain.Card, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, params)
	}
	return nil, m.DefaultError
}

func (m *MockCardService) Get(ctx context.Context, id int64) (*domain.Card, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

func (m *MockCardService) List(
	ctx context.Context,
	query service.CardQuery,
	page domain.Page,
) ([]domain.DueCard, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, query, page)
	}
	return nil, m.DefaultError
}

func (m *MockCardService) Update(ctx context.Context, id int64, patch domain.CardPatch) (*domain.Card, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, m.DefaultError
}

func (m *MockCardService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

func (m *MockCardService) ReviewState(ctx context.Context, id int64) (*domain.ReviewState, error) {
	if m.ReviewStateFn != nil {
		return m.ReviewStateFn(ctx, id)
	}
	return nil, m.DefaultError
}
