package api

import (
	"context"
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

func TestDeckHandler_Create(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	decks := &mocks.MockDeckService{
		CreateFn: func(_ context.Context, name string) (*domain.Deck, error) {
			return &domain.Deck{ID: 7, Name: name, CreatedAt: created}, nil
		},
	}
	h := newTestRouter(NewDeckHandler(decks, testPagination, nil))

	rec := doRequest(t, h, http.MethodPost, "/deck", CreateDeckRequest{Name: "Spanish"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Deck
	decodeBody(t, rec, &got)
	assert.Equal(t, domain.Deck{ID: 7, Name: "Spanish", CreatedAt: created}, got)
}

func TestDeckHandler_CreateValidation(t *testing.T) {
	h := newTestRouter(NewDeckHandler(&mocks.MockDeckService{}, testPagination, nil))

	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{"missing name", map[string]string{}, "Invalid name: required field"},
		{"empty body", nil, "Request body is required"},
		{"malformed", `{"name":`, "Validation error: malformed JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/deck", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := errorBody(t, rec)
			assert.Contains(t, resp.Error, tt.want)
			assert.NotEmpty(t, resp.TraceID)
		})
	}
}

func TestDeckHandler_List(t *testing.T) {
	var gotPage domain.Page
	decks := &mocks.MockDeckService{
		ListFn: func(_ context.Context, page domain.Page) ([]domain.Deck, error) {
			gotPage = page
			return []domain.Deck{{ID: 1, Name: "a"}}, nil
		},
	}
	h := newTestRouter(NewDeckHandler(decks, testPagination, nil))

	rec := doRequest(t, h, http.MethodGet, "/deck?qn=3&qs=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Page{Number: 3, Size: 5}, gotPage)

	rec = doRequest(t, h, http.MethodGet, "/deck", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Page{Number: 1, Size: 20}, gotPage)

	rec = doRequest(t, h, http.MethodGet, "/deck?qs=500", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doRequest(t, h, http.MethodGet, "/deck?qn=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeckHandler_GetNotFound(t *testing.T) {
	decks := &mocks.MockDeckService{
		DefaultError: service.NewServiceError("deck", "get", "failed to load deck", store.ErrDeckNotFound),
	}
	h := newTestRouter(NewDeckHandler(decks, testPagination, nil))

	rec := doRequest(t, h, http.MethodGet, "/deck/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Deck not found", errorBody(t, rec).Error)

	rec = doRequest(t, h, http.MethodGet, "/deck/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeckHandler_Update(t *testing.T) {
	var gotPatch domain.DeckPatch
	decks := &mocks.MockDeckService{
		UpdateFn: func(_ context.Context, id int64, patch domain.DeckPatch) (*domain.Deck, error) {
			gotPatch = patch
			return &domain.Deck{ID: id, Name: *patch.Name}, nil
		},
	}
	h := newTestRouter(NewDeckHandler(decks, testPagination, nil))

	rec := doRequest(t, h, http.MethodPatch, "/deck/4", map[string]string{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPatch.Name)
	assert.Equal(t, "Renamed", *gotPatch.Name)

	rec = doRequest(t, h, http.MethodPatch, "/deck/4", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "a patch must change something")
}

func TestDeckHandler_DeleteRequiresConfirmation(t *testing.T) {
	var deleted []int64
	decks := &mocks.MockDeckService{
		DeleteFn: func(_ context.Context, id int64) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	h := newTestRouter(NewDeckHandler(decks, testPagination, nil))

	rec := doRequest(t, h, http.MethodDelete, "/deck/2", nil)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Empty(t, deleted)

	rec = doRequest(t, h, http.MethodDelete, "/deck/2?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []int64{2}, deleted)
}

func TestTemplateAndMediaHandlers_Create(t *testing.T) {
	templates := &mocks.MockTemplateService{
		CreateFn: func(_ context.Context, name, content string) (*domain.Template, error) {
			return &domain.Template{ID: 1, Name: name, Content: content}, nil
		},
	}
	var gotSize int64
	media := &mocks.MockMediaService{
		CreateFn: func(_ context.Context, path, mime string, size int64) (*domain.Media, error) {
			gotSize = size
			return &domain.Media{ID: 2, Path: path, Mime: mime, Size: size}, nil
		},
	}
	h := newTestRouter(
		NewTemplateHandler(templates, testPagination, nil),
		NewMediaHandler(media, testPagination, nil),
	)

	rec := doRequest(t, h, http.MethodPost, "/template", CreateTemplateRequest{Name: "Basic", Content: "{{front}}<hr>{{back}}"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, h, http.MethodPost, "/template", CreateTemplateRequest{Name: "Basic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/media", CreateMediaRequest{Path: "/a.png", Mime: "image/png", Size: 12})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(12), gotSize)
	rec = doRequest(t, h, http.MethodPost, "/media", CreateMediaRequest{Path: "/a.png", Mime: "image/png", Size: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
