// Package store defines interfaces for persisting decks, templates, cards,
// media and review states. Implementations live under internal/platform.
// The interfaces keep services independent of the database while still
// letting them compose several stores inside one transaction via WithTx.
package store
