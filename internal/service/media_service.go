package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MediaService manages media metadata. File storage is handled elsewhere.
type MediaService interface {
	Create(ctx context.Context, path, mime string, size int64) (*domain.Media, error)
	Get(ctx context.Context, id int64) (*domain.Media, error)
	List(ctx context.Context, page domain.Page) ([]domain.Media, error)
	Update(ctx context.Context, id int64, patch domain.MediaPatch) (*domain.Media, error)

	// Delete removes the media row and its card links but no card.
	Delete(ctx context.Context, id int64) error
}

type mediaServiceImpl struct {
	media  store.MediaStore
	logger *slog.Logger
}

var _ MediaService = (*mediaServiceImpl)(nil)

// NewMediaService creates a MediaService.
func NewMediaService(media store.MediaStore, logger *slog.Logger) (MediaService, error) {
	if media == nil {
		return nil, fmt.Errorf("%w: media store cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &mediaServiceImpl{
		media:  media,
		logger: logger.With(slog.String("component", "media_service")),
	}, nil
}

func (s *mediaServiceImpl) Create(ctx context.Context, path, mime string, size int64) (*domain.Media, error) {
	m, err := domain.NewMedia(path, mime, size)
	if err != nil {
		return nil, NewServiceError("media", "create", "invalid media", err)
	}
	if err := s.media.Create(ctx, m); err != nil {
		return nil, NewServiceError("media", "create", "failed to save media", err)
	}
	return m, nil
}

func (s *mediaServiceImpl) Get(ctx context.Context, id int64) (*domain.Media, error) {
	m, err := s.media.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("media", "get", "failed to load media", err)
	}
	return m, nil
}

func (s *mediaServiceImpl) List(ctx context.Context, page domain.Page) ([]domain.Media, error) {
	if err := page.Validate(); err != nil {
		return nil, NewServiceError("media", "list", "invalid page", err)
	}
	media, err := s.media.List(ctx, page)
	if err != nil {
		return nil, NewServiceError("media", "list", "failed to list media", err)
	}
	return media, nil
}

func (s *mediaServiceImpl) Update(ctx context.Context, id int64, patch domain.MediaPatch) (*domain.Media, error) {
	if err := patch.Validate(); err != nil {
		return nil, NewServiceError("media", "update", "invalid patch", err)
	}

	current, err := s.media.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("media", "update", "failed to load media", err)
	}

	updated := patch.Apply(*current)
	if err := s.media.Update(ctx, &updated); err != nil {
		return nil, NewServiceError("media", "update", "failed to save media", err)
	}
	return &updated, nil
}

func (s *mediaServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.media.Delete(ctx, id); err != nil {
		return NewServiceError("media", "delete", "failed to delete media", err)
	}
	return nil
}
