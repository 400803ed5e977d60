package srs

import (
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs/v3"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// toFSRSCard converts a persisted review state into the algorithm's card type.
func toFSRSCard(rs domain.ReviewState) fsrs.Card {
	card := fsrs.Card{
		Due:           rs.Due,
		Stability:     rs.Stability,
		Difficulty:    rs.Difficulty,
		ElapsedDays:   uint64(rs.ElapsedDays),
		ScheduledDays: uint64(rs.ScheduledDays),
		Reps:          uint64(rs.Reps),
		Lapses:        uint64(rs.Lapses),
		State:         fsrs.State(rs.State),
	}
	if rs.LastReview != nil {
		card.LastReview = *rs.LastReview
	}
	return card
}

// fromFSRSCard converts the algorithm's output card back into a review state
// for the same card. prev is the state the review started from.
func fromFSRSCard(prev domain.ReviewState, card fsrs.Card) domain.ReviewState {
	next := domain.ReviewState{
		CardID:        prev.CardID,
		Due:           card.Due,
		Stability:     card.Stability,
		Difficulty:    card.Difficulty,
		ScheduledDays: int(card.ScheduledDays),
		Reps:          int(card.Reps),
		Lapses:        int(card.Lapses),
		State:         domain.State(card.State),
		ElapsedDays:   int(card.ElapsedDays),
		LearningSteps: nextLearningSteps(prev, domain.State(card.State)),
	}
	if !card.LastReview.IsZero() {
		lastReview := card.LastReview
		next.LastReview = &lastReview
	}
	return next
}

// nextLearningSteps counts the short-term steps taken in the current
// (re)learning phase. It resets when the card graduates to Review.
// go-fsrs v3 does not track steps, so the count lives here.
func nextLearningSteps(prev domain.ReviewState, next domain.State) int {
	if next != domain.StateLearning && next != domain.StateRelearning {
		return 0
	}
	if prev.State == next {
		return prev.LearningSteps + 1
	}
	return 1
}

// toReviewLog converts the algorithm's log entry into the domain log.
func toReviewLog(cardID int64, next domain.ReviewState, log fsrs.ReviewLog) domain.ReviewLog {
	return domain.ReviewLog{
		CardID:        cardID,
		Grade:         domain.Grade(log.Rating),
		State:         domain.State(log.State),
		Due:           next.Due,
		Stability:     next.Stability,
		Difficulty:    next.Difficulty,
		ElapsedDays:   int(log.ElapsedDays),
		ScheduledDays: int(log.ScheduledDays),
		Review:        log.Review,
	}
}

// newFSRS builds the algorithm from validated parameters.
func newFSRS(p *Params) *fsrs.FSRS {
	fp := fsrs.DefaultParam()
	fp.RequestRetention = p.DesiredRetention
	fp.MaximumInterval = float64(p.MaximumInterval)
	fp.EnableShortTerm = p.EnableShortTerm
	fp.EnableFuzz = p.EnableFuzz
	return fsrs.NewFSRS(fp)
}

// normalizeTime strips the monotonic clock reading so computed due times
// compare and persist identically.
func normalizeTime(t time.Time) time.Time {
	return t.Round(0)
}
