package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/study"
)

func newSessionTestRouter(t *testing.T, due *mocks.MockDueQuery, scheduler *mocks.MockScheduler) (http.Handler, *study.Registry) {
	t.Helper()
	reg := study.NewRegistry(study.Deps{
		Due:       due,
		Scheduler: scheduler,
		Renderer:  &mocks.MockCardRenderer{},
	}, nil, study.RegistryOptions{Now: func() time.Time { return fixedNow }}, nil)
	h := NewSessionHandler(reg, nil)
	h.now = func() time.Time { return fixedNow }
	return newTestRouter(h), reg
}

func twoDueCards() []domain.DueCard {
	return []domain.DueCard{
		{Card: domain.Card{ID: 1, DeckID: 3, Front: "uno", Back: "one"}, Review: domain.NewReviewState(1, fixedNow)},
		{Card: domain.Card{ID: 2, DeckID: 3, Front: "dos", Back: "two"}, Review: domain.NewReviewState(2, fixedNow)},
	}
}

func TestSessionHandler_FullSession(t *testing.T) {
	scheduler := &mocks.MockScheduler{Result: &service.GradeResult{}}
	h, reg := newSessionTestRouter(t, &mocks.MockDueQuery{Cards: twoDueCards()}, scheduler)

	rec := doRequest(t, h, http.MethodPost, "/session", CreateSessionRequest{DeckID: 3})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var view study.View
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StatePresenting, view.State)
	assert.Equal(t, 2, view.Total)
	require.NotNil(t, view.Card)
	assert.Equal(t, "front:uno", view.Card.Front)
	assert.Empty(t, view.Card.Back, "back stays hidden until flipped")

	base := "/session/" + view.ID

	rec = doRequest(t, h, http.MethodPost, base+"/grade", map[string]int{"grade": 3})
	assert.Equal(t, http.StatusConflict, rec.Code, "cannot grade before flipping")

	rec = doRequest(t, h, http.MethodPost, base+"/flip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StateRevealed, view.State)
	assert.Equal(t, "back:one", view.Card.Back)

	for i := 0; i < 2; i++ {
		if i > 0 {
			rec = doRequest(t, h, http.MethodPost, base+"/flip", nil)
			require.Equal(t, http.StatusOK, rec.Code)
		}
		rec = doRequest(t, h, http.MethodPost, base+"/grade", map[string]string{"grade": "good"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StateCompleted, view.State)
	assert.Equal(t, 2, view.Graded)
	assert.Equal(t, 2, scheduler.SubmitGradeCalls.Count())

	rec = doRequest(t, h, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StateCompleted, view.State)
	assert.Zero(t, reg.Len())

	rec = doRequest(t, h, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandler_AbandonActive(t *testing.T) {
	scheduler := &mocks.MockScheduler{}
	h, _ := newSessionTestRouter(t, &mocks.MockDueQuery{Cards: twoDueCards()}, scheduler)

	rec := doRequest(t, h, http.MethodPost, "/session", CreateSessionRequest{DeckID: 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	var view study.View
	decodeBody(t, rec, &view)

	rec = doRequest(t, h, http.MethodDelete, "/session/"+view.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StateAbandoned, view.State)
	assert.Zero(t, scheduler.SubmitGradeCalls.Count(), "abandoning writes no review state")
}

func TestSessionHandler_EmptyDeckAndRestart(t *testing.T) {
	due := &mocks.MockDueQuery{}
	h, _ := newSessionTestRouter(t, due, &mocks.MockScheduler{})

	asOf := fixedNow.UnixMilli()
	rec := doRequest(t, h, http.MethodPost, "/session", CreateSessionRequest{DeckID: 3, AsOf: &asOf})
	require.Equal(t, http.StatusCreated, rec.Code)
	var view study.View
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StateEmpty, view.State)
	calls := due.Calls()
	require.NotEmpty(t, calls)
	assert.True(t, calls[0].AsOf.Equal(fixedNow))

	due.Cards = twoDueCards()
	rec = doRequest(t, h, http.MethodPost, "/session/"+view.ID+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StatePresenting, view.State)
}

func TestSessionHandler_StartFailureDiscardsSession(t *testing.T) {
	due := &mocks.MockDueQuery{Err: errors.New("db down")}
	h, reg := newSessionTestRouter(t, due, &mocks.MockScheduler{})

	rec := doRequest(t, h, http.MethodPost, "/session", CreateSessionRequest{DeckID: 3})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
	assert.Zero(t, reg.Len())
}

func TestSessionHandler_Validation(t *testing.T) {
	h, _ := newSessionTestRouter(t, &mocks.MockDueQuery{}, &mocks.MockScheduler{})

	rec := doRequest(t, h, http.MethodPost, "/session", map[string]int{"deck_id": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doRequest(t, h, http.MethodPost, "/session/nope/flip", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandler_GradeFailureKeepsCardRevealed(t *testing.T) {
	scheduler := &mocks.MockScheduler{
		SubmitGradeFn: func(context.Context, int64, domain.Grade, time.Time) (*service.GradeResult, error) {
			return nil, errors.New("write failed")
		},
	}
	h, _ := newSessionTestRouter(t, &mocks.MockDueQuery{Cards: twoDueCards()}, scheduler)

	rec := doRequest(t, h, http.MethodPost, "/session", CreateSessionRequest{DeckID: 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	var view study.View
	decodeBody(t, rec, &view)
	base := "/session/" + view.ID

	rec = doRequest(t, h, http.MethodPost, base+"/flip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, h, http.MethodPost, base+"/grade", map[string]int{"grade": 2})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doRequest(t, h, http.MethodGet, base, nil)
	decodeBody(t, rec, &view)
	assert.Equal(t, study.StateRevealed, view.State)
	assert.Equal(t, int64(1), view.Card.ID)
}
