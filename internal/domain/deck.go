package domain

import (
	"strings"
	"time"
)

// Deck groups cards for study. Deleting a deck deletes its cards.
type Deck struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDeck builds an unsaved deck. The ID and creation time are assigned by the store.
func NewDeck(name string) (*Deck, error) {
	d := &Deck{Name: name}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the deck's required fields.
func (d *Deck) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return validationError("name", "is required")
	}
	return nil
}

// DeckPatch is a partial update of a deck. Nil fields are left unchanged.
type DeckPatch struct {
	Name *string
}

// Validate requires at least one field and rejects blank names.
func (p DeckPatch) Validate() error {
	if p.Name == nil {
		return validationError("patch", "must set at least one field")
	}
	if strings.TrimSpace(*p.Name) == "" {
		return validationError("name", "cannot be empty")
	}
	return nil
}

// Apply returns a copy of d with the patch applied.
func (p DeckPatch) Apply(d Deck) Deck {
	if p.Name != nil {
		d.Name = *p.Name
	}
	return d
}
