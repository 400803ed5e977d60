package api

import (
	"fmt"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// CreateDeckRequest is the body of POST /deck.
type CreateDeckRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateDeckRequest is the body of PATCH /deck/{id}.
type UpdateDeckRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// Validate requires at least one field.
func (r UpdateDeckRequest) Validate() error {
	return r.Patch().Validate()
}

// Patch converts the request to a domain patch.
func (r UpdateDeckRequest) Patch() domain.DeckPatch {
	return domain.DeckPatch{Name: r.Name}
}

// CreateTemplateRequest is the body of POST /template.
type CreateTemplateRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// UpdateTemplateRequest is the body of PATCH /template/{id}.
type UpdateTemplateRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

func (r UpdateTemplateRequest) Validate() error {
	return r.Patch().Validate()
}

func (r UpdateTemplateRequest) Patch() domain.TemplatePatch {
	return domain.TemplatePatch{Name: r.Name, Content: r.Content}
}

// CreateMediaRequest is the body of POST /media.
type CreateMediaRequest struct {
	Path string `json:"path" validate:"required"`
	Mime string `json:"mime" validate:"required"`
	Size int64  `json:"size" validate:"gte=0"`
}

// UpdateMediaRequest is the body of PATCH /media/{id}.
type UpdateMediaRequest struct {
	Path *string `json:"path" validate:"omitempty,min=1"`
	Mime *string `json:"mime" validate:"omitempty,min=1"`
	Size *int64  `json:"size" validate:"omitempty,gte=0"`
}

func (r UpdateMediaRequest) Validate() error {
	return r.Patch().Validate()
}

func (r UpdateMediaRequest) Patch() domain.MediaPatch {
	return domain.MediaPatch{Path: r.Path, Mime: r.Mime, Size: r.Size}
}

// CreateCardRequest is the body of POST /card.
type CreateCardRequest struct {
	DeckID     int64  `json:"deck_id"     validate:"required,gt=0"`
	TemplateID int64  `json:"template_id" validate:"required,gt=0"`
	Front      string `json:"front"       validate:"required"`
	Back       string `json:"back"`
}

// UpdateCardRequest is the body of PATCH /card/{id}. Review state cannot be
// changed through it.
type UpdateCardRequest struct {
	DeckID     *int64  `json:"deck_id"     validate:"omitempty,gt=0"`
	TemplateID *int64  `json:"template_id" validate:"omitempty,gt=0"`
	Front      *string `json:"front"       validate:"omitempty,min=1"`
	Back       *string `json:"back"`
}

func (r UpdateCardRequest) Validate() error {
	return r.Patch().Validate()
}

func (r UpdateCardRequest) Patch() domain.CardPatch {
	return domain.CardPatch{DeckID: r.DeckID, TemplateID: r.TemplateID, Front: r.Front, Back: r.Back}
}

// GradeRequest is the body of PATCH /card/{id}/fsrs and POST
// /session/{id}/grade. Date is the review time in epoch milliseconds and
// defaults to now. Grade accepts 1..4 or again, hard, good, easy.
type GradeRequest struct {
	Date  *int64       `json:"date" validate:"omitempty,gt=0"`
	Grade domain.Grade `json:"grade"`
}

// Validate rejects grades outside the four valid values.
func (r GradeRequest) Validate() error {
	if !r.Grade.IsValid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidGrade, int(r.Grade))
	}
	return nil
}

// ReviewTime returns the review time, or now when Date is unset.
func (r GradeRequest) ReviewTime(now func() time.Time) time.Time {
	if r.Date == nil {
		return now().UTC()
	}
	return time.UnixMilli(*r.Date).UTC()
}

// CreateSessionRequest is the body of POST /session. AsOf is in epoch
// milliseconds and defaults to now.
type CreateSessionRequest struct {
	DeckID int64  `json:"deck_id" validate:"required,gt=0"`
	AsOf   *int64 `json:"as_of"   validate:"omitempty,gt=0"`
}

// AsOfTime returns the as-of time, or the zero time when unset.
func (r CreateSessionRequest) AsOfTime() time.Time {
	if r.AsOf == nil {
		return time.Time{}
	}
	return time.UnixMilli(*r.AsOf).UTC()
}

// StartSessionRequest is the optional body of POST /session/{id}/start.
type StartSessionRequest struct {
	AsOf *int64 `json:"as_of" validate:"omitempty,gt=0"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
