// Package domain contains the core entities of the flashcard system: decks,
// templates, cards, media and the per-card review state owned by the
// scheduler. It is independent of storage and delivery mechanisms.
package domain
