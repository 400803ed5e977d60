package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Grade is the outcome of recalling a card.
type Grade int

// Possible grades. The numeric values match the scheduling algorithm's ratings.
const (
	GradeAgain Grade = iota + 1
	GradeHard
	GradeGood
	GradeEasy
)

var gradeNames = [...]string{GradeAgain: "again", GradeHard: "hard", GradeGood: "good", GradeEasy: "easy"}

// Grades lists the four valid grades in ascending order.
var Grades = []Grade{GradeAgain, GradeHard, GradeGood, GradeEasy}

// IsValid reports whether g is one of Again, Hard, Good, Easy.
func (g Grade) IsValid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// String returns the lower-case grade name, or "Grade(n)" for invalid values.
func (g Grade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// ParseGrade accepts a grade name (case-insensitive) or its number 1..4.
func ParseGrade(s string) (Grade, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for g := GradeAgain; g <= GradeEasy; g++ {
		if gradeNames[g] == s {
			return g, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		g := Grade(n)
		if g.IsValid() {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

// MarshalJSON encodes the grade as its number.
func (g Grade) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(g))
}

// UnmarshalJSON accepts a number or a grade name. Out-of-range numbers are
// kept as-is so the scheduler can reject them with ErrInvalidGrade.
func (g *Grade) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*g = Grade(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGrade, data)
	}
	parsed, err := ParseGrade(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// State is the learning stage of a card.
type State int

// Review state values, persisted as integers.
const (
	StateNew State = iota
	StateLearning
	StateReview
	StateRelearning
)

var stateNames = [...]string{
	StateNew:        "new",
	StateLearning:   "learning",
	StateReview:     "review",
	StateRelearning: "relearning",
}

// IsValid reports whether s is a known state.
func (s State) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

// String returns the state name.
func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ReviewState is the memory-model record for one card. It is created with
// the card and afterwards replaced as a whole row by the scheduler only.
type ReviewState struct {
	CardID        int64      `json:"card_id"`
	Due           time.Time  `json:"due"`
	Stability     float64    `json:"stability"`
	Difficulty    float64    `json:"difficulty"`
	ScheduledDays int        `json:"scheduled_days"`
	LearningSteps int        `json:"learning_steps"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	State         State      `json:"state"`
	LastReview    *time.Time `json:"last_review"`
	ElapsedDays   int        `json:"elapsed_days"`
}

// NewReviewState returns the default state of a freshly created card: New
// and due at its creation time.
func NewReviewState(cardID int64, createdAt time.Time) ReviewState {
	return ReviewState{
		CardID: cardID,
		Due:    createdAt,
		State:  StateNew,
	}
}

// Validate checks the invariants a persisted review state must hold.
func (r *ReviewState) Validate() error {
	if r.CardID <= 0 {
		return validationError("card_id", "is required")
	}
	if r.Due.IsZero() {
		return validationError("due", "is required")
	}
	if !r.State.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidState, int(r.State))
	}
	if r.Reps < 0 || r.Lapses < 0 || r.ScheduledDays < 0 || r.ElapsedDays < 0 || r.LearningSteps < 0 {
		return validationError("counters", "cannot be negative")
	}
	return nil
}

// IsDue reports whether the card is eligible for review at asOf. The
// boundary is inclusive.
func (r *ReviewState) IsDue(asOf time.Time) bool {
	return !r.Due.After(asOf)
}

// ReviewLog records one grade submission as produced by the scheduling
// algorithm. It lets callers audit the transition from one state to the next.
type ReviewLog struct {
	CardID        int64     `json:"card_id"`
	Grade         Grade     `json:"grade"`
	State         State     `json:"state"`
	Due           time.Time `json:"due"`
	Stability     float64   `json:"stability"`
	Difficulty    float64   `json:"difficulty"`
	ElapsedDays   int       `json:"elapsed_days"`
	ScheduledDays int       `json:"scheduled_days"`
	Review        time.Time `json:"review"`
}
