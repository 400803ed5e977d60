package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MediaHandler serves /media. It manages metadata only.
type MediaHandler struct {
	media      service.MediaService
	pagination config.PaginationConfig
	logger     *slog.Logger
}

func NewMediaHandler(media service.MediaService, pagination config.PaginationConfig, logger *slog.Logger) *MediaHandler {
	if media == nil {
		panic("media cannot be nil for MediaHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaHandler{
		media:      media,
		pagination: pagination,
		logger:     logger.With(slog.String("component", "media_handler")),
	}
}

func (h *MediaHandler) Routes(r chi.Router) {
	r.Route("/media", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := shared.ParsePage(r, h.pagination)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	items, err := h.media.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMediaRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	m, err := h.media.Create(r.Context(), req.Path, req.Mime, req.Size)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, m)
}

func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	m, err := h.media.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, m)
}

func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req UpdateMediaRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	m, err := h.media.Update(r.Context(), id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, m)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := requireConfirmation(r); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.media.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
