package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/study"
)

type scriptedInput struct {
	lines []string
	end   error
}

func (s *scriptedInput) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", s.end
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, cards []domain.DueCard, scheduler *mocks.MockScheduler) *study.Session {
	t.Helper()
	s, err := study.NewSession("cli-test", 1, study.Deps{
		Due:       &mocks.MockDueQuery{Cards: cards},
		Scheduler: scheduler,
		Renderer:  &mocks.MockCardRenderer{},
	}, study.Options{Now: func() time.Time { return now }})
	require.NoError(t, err)
	return s
}

func dueCards(n int) []domain.DueCard {
	cards := make([]domain.DueCard, n)
	for i := range cards {
		id := int64(i + 1)
		cards[i] = domain.DueCard{
			Card:   domain.Card{ID: id, DeckID: 1, Front: "q" + string(rune('a'+i)), Back: "a" + string(rune('a'+i))},
			Review: domain.NewReviewState(id, now),
		}
	}
	return cards
}

func TestREPL_CompletesSession(t *testing.T) {
	scheduler := &mocks.MockScheduler{Result: &service.GradeResult{State: domain.ReviewState{Due: now.Add(time.Hour)}}}
	s := newTestSession(t, dueCards(2), scheduler)
	in := &scriptedInput{lines: []string{"3", "", "good", "f", "easy"}, end: io.EOF}
	var out bytes.Buffer

	require.NoError(t, newREPL(s, in, &out).Run(context.Background()))

	assert.Equal(t, study.StateCompleted, s.State())
	calls := scheduler.SubmitGradeCalls.All()
	require.Len(t, calls, 2)
	assert.Equal(t, domain.GradeGood, calls[0].Grade)
	assert.Equal(t, domain.GradeEasy, calls[1].Grade)
	assert.Contains(t, out.String(), "Flip the card before grading it.")
	assert.Contains(t, out.String(), "front:qa")
	assert.Contains(t, out.String(), "back:aa")
	assert.Contains(t, out.String(), "Done. 2 cards reviewed.")
}

func TestREPL_AbortAbandons(t *testing.T) {
	for _, end := range []error{io.EOF, liner.ErrPromptAborted} {
		scheduler := &mocks.MockScheduler{}
		s := newTestSession(t, dueCards(3), scheduler)
		var out bytes.Buffer

		require.NoError(t, newREPL(s, &scriptedInput{lines: []string{"f"}, end: end}, &out).Run(context.Background()))

		assert.Equal(t, study.StateAbandoned, s.State())
		assert.Zero(t, scheduler.SubmitGradeCalls.Count())
		assert.Contains(t, out.String(), "Session abandoned after 0 of 3 cards.")
	}
}

func TestREPL_EmptyDeck(t *testing.T) {
	s := newTestSession(t, nil, &mocks.MockScheduler{})
	var out bytes.Buffer

	require.NoError(t, newREPL(s, &scriptedInput{end: io.EOF}, &out).Run(context.Background()))
	assert.Equal(t, study.StateEmpty, s.State())
	assert.Contains(t, out.String(), "Nothing is due")
}

func TestREPL_GradeFailureCanBeRetried(t *testing.T) {
	fails := 1
	scheduler := &mocks.MockScheduler{
		SubmitGradeFn: func(context.Context, int64, domain.Grade, time.Time) (*service.GradeResult, error) {
			if fails > 0 {
				fails--
				return nil, errors.New("connection reset")
			}
			return &service.GradeResult{}, nil
		},
	}
	s := newTestSession(t, dueCards(1), scheduler)
	var out bytes.Buffer

	in := &scriptedInput{lines: []string{"f", "2", "2"}, end: io.EOF}
	require.NoError(t, newREPL(s, in, &out).Run(context.Background()))

	assert.Equal(t, study.StateCompleted, s.State())
	assert.Equal(t, 2, scheduler.SubmitGradeCalls.Count())
	assert.Contains(t, out.String(), "Could not save the grade")
}

func TestREPL_UnknownInputAndStatus(t *testing.T) {
	s := newTestSession(t, dueCards(1), &mocks.MockScheduler{})
	var out bytes.Buffer

	in := &scriptedInput{lines: []string{"banana", "s", "q"}}
	require.NoError(t, newREPL(s, in, &out).Run(context.Background()))

	assert.Contains(t, out.String(), `Unknown input "banana"`)
	assert.Contains(t, out.String(), "0 of 1 graded")
	assert.Equal(t, study.StateAbandoned, s.State())
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--deck", "4", "-n", "10"})
	require.NoError(t, err)
	assert.Equal(t, options{deckID: 4, limit: 10}, opts)

	opts, err = parseFlags([]string{"-d", "2"})
	require.NoError(t, err)
	assert.Equal(t, -1, opts.limit)

	_, err = parseFlags(nil)
	assert.Error(t, err)
}
