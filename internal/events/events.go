package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// Event types emitted by the application.
const (
	TypeReviewLogged     = "review.logged"
	TypeSessionStarted   = "session.started"
	TypeSessionCompleted = "session.completed"
	TypeSessionAbandoned = "session.abandoned"
)

// Event is a notification that something happened, with a JSON payload
// whose shape depends on Type.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with a fresh ID and the serialized payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// ReviewLogged is the payload of TypeReviewLogged: the audit record of one
// grade submission.
type ReviewLogged struct {
	Log   domain.ReviewLog   `json:"log"`
	State domain.ReviewState `json:"state"`
}

// NewReviewLoggedEvent wraps a review log and the state it produced.
func NewReviewLoggedEvent(log domain.ReviewLog, state domain.ReviewState) (*Event, error) {
	return NewEvent(TypeReviewLogged, ReviewLogged{Log: log, State: state})
}

// SessionChanged is the payload of the session event types.
type SessionChanged struct {
	SessionID string `json:"session_id"`
	DeckID    int64  `json:"deck_id"`
	Graded    int    `json:"graded"`
	Remaining int    `json:"remaining"`
}

// EventHandler processes events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter publishes events without knowing who handles them.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}
