package domain

import (
	"strings"
	"time"
)

// Media describes a stored media file referenced from cards through {{media:N}}.
// Deleting a card removes its links but never the media row.
type Media struct {
	ID        int64     `json:"id"`
	Mime      string    `json:"mime"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMedia builds an unsaved media record.
func NewMedia(path, mime string, size int64) (*Media, error) {
	m := &Media{Path: path, Mime: mime, Size: size}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks path, mime type and size.
func (m *Media) Validate() error {
	if strings.TrimSpace(m.Path) == "" {
		return validationError("path", "is required")
	}
	if strings.TrimSpace(m.Mime) == "" {
		return validationError("mime", "is required")
	}
	if m.Size < 0 {
		return validationError("size", "cannot be negative")
	}
	return nil
}

// MediaPatch is a partial update of a media record.
type MediaPatch struct {
	Path *string
	Mime *string
	Size *int64
}

// Validate requires at least one field.
func (p MediaPatch) Validate() error {
	if p.Path == nil && p.Mime == nil && p.Size == nil {
		return validationError("patch", "must set at least one field")
	}
	if p.Path != nil && strings.TrimSpace(*p.Path) == "" {
		return validationError("path", "cannot be empty")
	}
	if p.Mime != nil && strings.TrimSpace(*p.Mime) == "" {
		return validationError("mime", "cannot be empty")
	}
	if p.Size != nil && *p.Size < 0 {
		return validationError("size", "cannot be negative")
	}
	return nil
}

// Apply returns a copy of m with the patch applied.
func (p MediaPatch) Apply(m Media) Media {
	if p.Path != nil {
		m.Path = *p.Path
	}
	if p.Mime != nil {
		m.Mime = *p.Mime
	}
	if p.Size != nil {
		m.Size = *p.Size
	}
	return m
}
