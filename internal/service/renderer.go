package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// CardRenderer renders cards through their templates.
type CardRenderer interface {
	Render(ctx context.Context, card *domain.Card) (domain.RenderedCard, error)

	// RenderAll renders several cards, loading each template and media row once.
	RenderAll(ctx context.Context, cards []domain.Card) ([]domain.RenderedCard, error)
}

type cardRendererImpl struct {
	templates store.TemplateStore
	media     store.MediaStore
	logger    *slog.Logger
}

var _ CardRenderer = (*cardRendererImpl)(nil)

// NewCardRenderer creates a CardRenderer. It panics on nil stores.
func NewCardRenderer(templates store.TemplateStore, media store.MediaStore, logger *slog.Logger) CardRenderer {
	if templates == nil {
		panic("templates cannot be nil")
	}
	if media == nil {
		panic("media cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cardRendererImpl{
		templates: templates,
		media:     media,
		logger:    logger.With(slog.String("component", "card_renderer")),
	}
}

func (r *cardRendererImpl) Render(ctx context.Context, card *domain.Card) (domain.RenderedCard, error) {
	out, err := r.RenderAll(ctx, []domain.Card{*card})
	if err != nil {
		return domain.RenderedCard{}, err
	}
	return out[0], nil
}

func (r *cardRendererImpl) RenderAll(ctx context.Context, cards []domain.Card) ([]domain.RenderedCard, error) {
	templates := make(map[int64]*domain.Template)
	var texts []string
	for i := range cards {
		tid := cards[i].TemplateID
		if _, ok := templates[tid]; !ok {
			t, err := r.templates.GetByID(ctx, tid)
			if err != nil {
				return nil, fmt.Errorf("failed to load template %d for card %d: %w", tid, cards[i].ID, err)
			}
			templates[tid] = t
			texts = append(texts, t.Content)
		}
		texts = append(texts, cards[i].Front, cards[i].Back)
	}

	media, err := r.media.GetMany(ctx, domain.MediaRefs(texts...))
	if err != nil {
		return nil, fmt.Errorf("failed to load media: %w", err)
	}

	out := make([]domain.RenderedCard, len(cards))
	for i := range cards {
		out[i] = domain.Render(templates[cards[i].TemplateID], &cards[i], media)
	}
	return out, nil
}
