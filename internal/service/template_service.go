package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// TemplateService manages card templates.
type TemplateService interface {
	Create(ctx context.Context, name, content string) (*domain.Template, error)
	Get(ctx context.Context, id int64) (*domain.Template, error)
	List(ctx context.Context, page domain.Page) ([]domain.Template, error)
	Update(ctx context.Context, id int64, patch domain.TemplatePatch) (*domain.Template, error)

	// Delete removes the template and every card using it.
	Delete(ctx context.Context, id int64) error
}

type templateServiceImpl struct {
	templates store.TemplateStore
	logger    *slog.Logger
}

var _ TemplateService = (*templateServiceImpl)(nil)

// NewTemplateService creates a TemplateService.
func NewTemplateService(templates store.TemplateStore, logger *slog.Logger) (TemplateService, error) {
	if templates == nil {
		return nil, fmt.Errorf("%w: template store cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &templateServiceImpl{
		templates: templates,
		logger:    logger.With(slog.String("component", "template_service")),
	}, nil
}

func (s *templateServiceImpl) Create(ctx context.Context, name, content string) (*domain.Template, error) {
	t, err := domain.NewTemplate(name, content)
	if err != nil {
		return nil, NewServiceError("template", "create", "invalid template", err)
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, NewServiceError("template", "create", "failed to save template", err)
	}
	return t, nil
}

func (s *templateServiceImpl) Get(ctx context.Context, id int64) (*domain.Template, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("template", "get", "failed to load template", err)
	}
	return t, nil
}

func (s *templateServiceImpl) List(ctx context.Context, page domain.Page) ([]domain.Template, error) {
	if err := page.Validate(); err != nil {
		return nil, NewServiceError("template", "list", "invalid page", err)
	}
	templates, err := s.templates.List(ctx, page)
	if err != nil {
		return nil, NewServiceError("template", "list", "failed to list templates", err)
	}
	return templates, nil
}

func (s *templateServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.TemplatePatch,
) (*domain.Template, error) {
	if err := patch.Validate(); err != nil {
		return nil, NewServiceError("template", "update", "invalid patch", err)
	}

	current, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("template", "update", "failed to load template", err)
	}

	updated := patch.Apply(*current)
	if err := s.templates.Update(ctx, &updated); err != nil {
		return nil, NewServiceError("template", "update", "failed to save template", err)
	}
	return &updated, nil
}

func (s *templateServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return NewServiceError("template", "delete", "failed to delete template", err)
	}
	return nil
}
