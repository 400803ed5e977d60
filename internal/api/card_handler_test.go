package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newCardTestRouter(cards *mocks.MockCardService, scheduler *mocks.MockScheduler) http.Handler {
	h := NewCardHandler(cards, scheduler, testPagination, nil)
	h.now = func() time.Time { return fixedNow }
	return newTestRouter(h)
}

func TestCardHandler_ListFilters(t *testing.T) {
	var gotQuery service.CardQuery
	var gotPage domain.Page
	cards := &mocks.MockCardService{
		ListFn: func(_ context.Context, q service.CardQuery, p domain.Page) ([]domain.DueCard, error) {
			gotQuery, gotPage = q, p
			return []domain.DueCard{{Card: domain.Card{ID: 1}, Review: domain.NewReviewState(1, fixedNow)}}, nil
		},
	}
	h := newCardTestRouter(cards, &mocks.MockScheduler{})

	rec := doRequest(t, h, http.MethodGet, "/card?deck_id=3&learn=true&qn=2&qs=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotQuery.DeckID)
	assert.Equal(t, int64(3), *gotQuery.DeckID)
	assert.True(t, gotQuery.Learn)
	assert.Equal(t, domain.Page{Number: 2, Size: 10}, gotPage)

	var body []map[string]interface{}
	decodeBody(t, rec, &body)
	require.Len(t, body, 1)
	assert.Contains(t, body[0], "fsrs")

	rec = doRequest(t, h, http.MethodGet, "/card", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotQuery.DeckID)
	assert.False(t, gotQuery.Learn)

	rec = doRequest(t, h, http.MethodGet, "/card?deck_id=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCardHandler_CreateUnknownMedia(t *testing.T) {
	cards := &mocks.MockCardService{
		CreateFn: func(_ context.Context, _ service.CreateCardParams) (*domain.Card, error) {
			return nil, service.NewServiceError("card", "create", "invalid media references",
				mediaError())
		},
	}
	h := newCardTestRouter(cards, &mocks.MockScheduler{})

	rec := doRequest(t, h, http.MethodPost, "/card", CreateCardRequest{DeckID: 1, TemplateID: 1, Front: "{{media:9}}"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Card references unknown media", errorBody(t, rec).Error)
}

func mediaError() error {
	return fmt.Errorf("%w: %w: [9]", domain.ErrValidation, service.ErrUnknownMedia)
}

func TestCardHandler_SubmitGrade(t *testing.T) {
	due := fixedNow.Add(10 * time.Minute)
	scheduler := &mocks.MockScheduler{
		Result: &service.GradeResult{
			State: domain.ReviewState{CardID: 5, Due: due, Reps: 1, State: domain.StateLearning},
			Log:   domain.ReviewLog{CardID: 5, Grade: domain.GradeGood},
		},
	}
	h := newCardTestRouter(&mocks.MockCardService{}, scheduler)

	t.Run("numeric grade with date", func(t *testing.T) {
		date := fixedNow.Add(-time.Hour).UnixMilli()
		rec := doRequest(t, h, http.MethodPatch, "/card/5/fsrs", map[string]interface{}{"grade": 3, "date": date})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got service.GradeResult
		decodeBody(t, rec, &got)
		assert.Equal(t, 1, got.State.Reps)
		assert.True(t, got.State.Due.Equal(due))

		calls := scheduler.SubmitGradeCalls.All()
		require.NotEmpty(t, calls)
		last := calls[len(calls)-1]
		assert.Equal(t, int64(5), last.CardID)
		assert.Equal(t, domain.GradeGood, last.Grade)
		assert.True(t, last.ReviewTime.Equal(time.UnixMilli(date)))
	})

	t.Run("named grade defaults to now", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPatch, "/card/5/fsrs", map[string]interface{}{"grade": "easy"})
		require.Equal(t, http.StatusOK, rec.Code)
		calls := scheduler.SubmitGradeCalls.All()
		last := calls[len(calls)-1]
		assert.Equal(t, domain.GradeEasy, last.Grade)
		assert.True(t, last.ReviewTime.Equal(fixedNow))
	})

	t.Run("invalid grades never reach the scheduler", func(t *testing.T) {
		before := scheduler.SubmitGradeCalls.Count()
		for _, body := range []string{`{"grade":0}`, `{"grade":5}`, `{"grade":"perfect"}`, `{}`} {
			rec := doRequest(t, h, http.MethodPatch, "/card/5/fsrs", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Contains(t, errorBody(t, rec).Error, "Invalid grade", body)
		}
		assert.Equal(t, before, scheduler.SubmitGradeCalls.Count())
	})
}

func TestCardHandler_SubmitGradeErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing card", service.NewServiceError("scheduler", "grade", "card not found", store.ErrCardNotFound), http.StatusNotFound},
		{"conflict", service.NewServiceError("scheduler", "grade", "write failed", store.ErrConflict), http.StatusConflict},
		{"storage", service.NewServiceError("scheduler", "grade", "write failed", store.ErrTransactionFailed), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newCardTestRouter(&mocks.MockCardService{}, &mocks.MockScheduler{Err: tt.err})
			rec := doRequest(t, h, http.MethodPatch, "/card/5/fsrs", map[string]int{"grade": 1})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCardHandler_GetReviewState(t *testing.T) {
	state := domain.NewReviewState(8, fixedNow)
	cards := &mocks.MockCardService{
		ReviewStateFn: func(_ context.Context, id int64) (*domain.ReviewState, error) {
			if id != 8 {
				return nil, store.ErrCardNotFound
			}
			return &state, nil
		},
	}
	h := newCardTestRouter(cards, &mocks.MockScheduler{})

	rec := doRequest(t, h, http.MethodGet, "/card/8/fsrs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.ReviewState
	decodeBody(t, rec, &got)
	assert.Equal(t, domain.StateNew, got.State)
	assert.True(t, got.Due.Equal(fixedNow))

	rec = doRequest(t, h, http.MethodGet, "/card/9/fsrs", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
