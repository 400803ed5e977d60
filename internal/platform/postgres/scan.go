package postgres

import (
	"database/sql"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const reviewStateColumns = `f.card_id, f.due, f.stability, f.difficulty, f.scheduled_days,
	f.learning_steps, f.reps, f.lapses, f.state, f.last_review, f.elapsed_days`

const dueCardColumns = `c.id, c.deck_id, c.template_id, c.front, c.back, c.create_at, ` + reviewStateColumns

func scanReviewState(row rowScanner) (*domain.ReviewState, error) {
	var (
		r          domain.ReviewState
		state      int16
		lastReview sql.NullTime
	)
	if err := row.Scan(
		&r.CardID,
		&r.Due,
		&r.Stability,
		&r.Difficulty,
		&r.ScheduledDays,
		&r.LearningSteps,
		&r.Reps,
		&r.Lapses,
		&state,
		&lastReview,
		&r.ElapsedDays,
	); err != nil {
		return nil, err
	}
	r.State = domain.State(state)
	if lastReview.Valid {
		t := lastReview.Time
		r.LastReview = &t
	}
	return &r, nil
}

func scanDueCard(row rowScanner) (domain.DueCard, error) {
	var (
		dc         domain.DueCard
		state      int16
		lastReview sql.NullTime
	)
	err := row.Scan(
		&dc.ID,
		&dc.DeckID,
		&dc.TemplateID,
		&dc.Front,
		&dc.Back,
		&dc.CreatedAt,
		&dc.Review.CardID,
		&dc.Review.Due,
		&dc.Review.Stability,
		&dc.Review.Difficulty,
		&dc.Review.ScheduledDays,
		&dc.Review.LearningSteps,
		&dc.Review.Reps,
		&dc.Review.Lapses,
		&state,
		&lastReview,
		&dc.Review.ElapsedDays,
	)
	if err != nil {
		return domain.DueCard{}, err
	}
	dc.Review.State = domain.State(state)
	if lastReview.Valid {
		t := lastReview.Time
		dc.Review.LastReview = &t
	}
	return dc, nil
}

func scanDueCards(rows *sql.Rows) ([]domain.DueCard, error) {
	defer func() { _ = rows.Close() }()

	cards := make([]domain.DueCard, 0)
	for rows.Next() {
		dc, err := scanDueCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullableID turns an optional filter ID into a query argument.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
