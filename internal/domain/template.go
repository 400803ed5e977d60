package domain

import (
	"strings"
	"time"
)

// Template is a text pattern rendering a card's stored fields into its front
// and back. Content may reference {{front}}, {{back}} and {{media:N}}; the
// first Separator splits the rendered text into the two halves.
type Template struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTemplate builds an unsaved template.
func NewTemplate(name, content string) (*Template, error) {
	t := &Template{Name: name, Content: content}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that both name and content are present.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return validationError("name", "is required")
	}
	if strings.TrimSpace(t.Content) == "" {
		return validationError("content", "is required")
	}
	return nil
}

// TemplatePatch is a partial update of a template.
type TemplatePatch struct {
	Name    *string
	Content *string
}

// Validate requires at least one field; provided fields may not be blank.
func (p TemplatePatch) Validate() error {
	if p.Name == nil && p.Content == nil {
		return validationError("patch", "must set at least one field")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return validationError("name", "cannot be empty")
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return validationError("content", "cannot be empty")
	}
	return nil
}

// Apply returns a copy of t with the patch applied.
func (p TemplatePatch) Apply(t Template) Template {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	return t
}
