// Package srs wraps the spaced-repetition scheduling function behind a narrow
// interface: (state, grade, time) -> (state, log). The concrete algorithm can
// be swapped without touching the scheduler, due query or study sessions.
package srs

import (
	"errors"
	"fmt"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs/v3"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// ErrInvalidReviewTime is returned when the review time is the zero time.
var ErrInvalidReviewTime = errors.New("review time is required")

// Service defines the scheduling function consumed by the scheduler.
type Service interface {
	// Schedule computes the next review state for a card graded at now.
	// It never mutates its input and performs no I/O. The returned log
	// describes the transition for auditing.
	Schedule(
		state domain.ReviewState,
		grade domain.Grade,
		now time.Time,
	) (domain.ReviewState, domain.ReviewLog, error)
}

// fsrsService is the FSRS implementation of Service.
type fsrsService struct {
	params *Params
	fsrs   *fsrs.FSRS
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		params = NewDefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &fsrsService{
		params: params,
		fsrs:   newFSRS(params),
	}, nil
}

// Schedule implements Service.
func (s *fsrsService) Schedule(
	state domain.ReviewState,
	grade domain.Grade,
	now time.Time,
) (domain.ReviewState, domain.ReviewLog, error) {
	if !grade.IsValid() {
		return domain.ReviewState{}, domain.ReviewLog{}, fmt.Errorf("%w: %d", domain.ErrInvalidGrade, int(grade))
	}
	if now.IsZero() {
		return domain.ReviewState{}, domain.ReviewLog{}, ErrInvalidReviewTime
	}
	if !state.State.IsValid() {
		return domain.ReviewState{}, domain.ReviewLog{}, fmt.Errorf("%w: %d", domain.ErrInvalidState, int(state.State))
	}

	now = normalizeTime(now)
	info := s.fsrs.Repeat(toFSRSCard(state), now)[fsrs.Rating(grade)]

	next := fromFSRSCard(state, info.Card)
	return next, toReviewLog(state.CardID, next, info.ReviewLog), nil
}
