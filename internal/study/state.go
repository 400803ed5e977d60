package study

import (
	"errors"
	"fmt"
)

// State is a session's position in the study state machine.
type State int

// Session states.
const (
	StateIdle State = iota
	StateEmpty
	StatePresenting
	StateRevealed
	StateCompleted
	StateAbandoned
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateEmpty:      "empty",
	StatePresenting: "presenting",
	StateRevealed:   "revealed",
	StateCompleted:  "completed",
	StateAbandoned:  "abandoned",
}

func (s State) String() string {
	if s >= StateIdle && s <= StateAbandoned {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// Terminal reports whether no further action other than a restart of an
// Empty session is possible.
func (s State) Terminal() bool {
	return s == StateEmpty || s == StateCompleted || s == StateAbandoned
}

// Errors returned by sessions and the registry.
var (
	// ErrInvalidTransition is returned when an action is not allowed in the
	// session's current state.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrSessionNotFound is returned for unknown or evicted session IDs.
	ErrSessionNotFound = errors.New("session not found")
)

// TransitionError names the rejected action and the state it was tried in.
type TransitionError struct {
	Action string
	State  State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a session in state %s", e.Action, e.State)
}

// Unwrap returns ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Transition describes one state change of a session. CardID is the card
// shown after the change, or 0 when none is.
type Transition struct {
	SessionID string
	DeckID    int64
	From      State
	To        State
	CardID    int64
	Graded    int
	Remaining int
}
