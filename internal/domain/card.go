package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// mediaTokenPattern matches {{media:N}} references in card text and templates.
var mediaTokenPattern = regexp.MustCompile(`\{\{media:(\d+)\}\}`)

// Card is a flashcard belonging to exactly one deck and one template.
// Every card has exactly one ReviewState, created together with it.
type Card struct {
	ID         int64     `json:"id"`
	DeckID     int64     `json:"deck_id"`
	TemplateID int64     `json:"template_id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCard builds an unsaved card. The store assigns the ID and creation time
// and creates the initial review state in the same transaction.
func NewCard(deckID, templateID int64, front, back string) (*Card, error) {
	c := &Card{
		DeckID:     deckID,
		TemplateID: templateID,
		Front:      front,
		Back:       back,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the card's references and text.
func (c *Card) Validate() error {
	if c.DeckID <= 0 {
		return validationError("deck_id", "is required")
	}
	if c.TemplateID <= 0 {
		return validationError("template_id", "is required")
	}
	if strings.TrimSpace(c.Front) == "" {
		return validationError("front", "is required")
	}
	return nil
}

// MediaIDs returns the distinct media IDs referenced by the card's front and
// back, in ascending order.
func (c *Card) MediaIDs() []int64 {
	return MediaRefs(c.Front, c.Back)
}

// MediaRefs returns the distinct media IDs referenced by {{media:N}} tokens in
// the given texts, in ascending order.
func MediaRefs(texts ...string) []int64 {
	seen := make(map[int64]struct{})
	for _, text := range texts {
		for _, m := range mediaTokenPattern.FindAllStringSubmatch(text, -1) {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			seen[id] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CardPatch is a partial update of a card's fields. Review state is never
// part of a card patch.
type CardPatch struct {
	DeckID     *int64
	TemplateID *int64
	Front      *string
	Back       *string
}

// Validate requires at least one field and checks the provided ones.
func (p CardPatch) Validate() error {
	if p.DeckID == nil && p.TemplateID == nil && p.Front == nil && p.Back == nil {
		return validationError("patch", "must set at least one field")
	}
	if p.DeckID != nil && *p.DeckID <= 0 {
		return validationError("deck_id", "must be positive")
	}
	if p.TemplateID != nil && *p.TemplateID <= 0 {
		return validationError("template_id", "must be positive")
	}
	if p.Front != nil && strings.TrimSpace(*p.Front) == "" {
		return validationError("front", "cannot be empty")
	}
	return nil
}

// Apply returns a copy of c with the patch applied.
func (p CardPatch) Apply(c Card) Card {
	if p.DeckID != nil {
		c.DeckID = *p.DeckID
	}
	if p.TemplateID != nil {
		c.TemplateID = *p.TemplateID
	}
	if p.Front != nil {
		c.Front = *p.Front
	}
	if p.Back != nil {
		c.Back = *p.Back
	}
	return c
}

// TouchesText reports whether the patch changes the card's front or back,
// which requires its media links to be rebuilt.
func (p CardPatch) TouchesText() bool {
	return p.Front != nil || p.Back != nil
}

// DueCard is a card joined with its review state, as returned by due queries
// and card listings.
type DueCard struct {
	Card
	Review ReviewState `json:"fsrs"`
}
