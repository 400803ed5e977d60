package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// DeckHandler serves /deck.
type DeckHandler struct {
	decks      service.DeckService
	pagination config.PaginationConfig
	logger     *slog.Logger
}

// NewDeckHandler creates a DeckHandler.
func NewDeckHandler(decks service.DeckService, pagination config.PaginationConfig, logger *slog.Logger) *DeckHandler {
	if decks == nil {
		panic("decks cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		decks:      decks,
		pagination: pagination,
		logger:     logger.With(slog.String("component", "deck_handler")),
	}
}

// Routes registers the deck endpoints on r.
func (h *DeckHandler) Routes(r chi.Router) {
	r.Route("/deck", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /deck?qn=&qs=.
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := shared.ParsePage(r, h.pagination)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	decks, err := h.decks.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// Create handles POST /deck.
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	deck, err := h.decks.Create(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("deck created", slog.Int64("deck_id", deck.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// Get handles GET /deck/{id}.
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	deck, err := h.decks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// Update handles PATCH /deck/{id}.
func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req UpdateDeckRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	deck, err := h.decks.Update(r.Context(), id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// Delete handles DELETE /deck/{id}?confirm=true. The deck's cards and their
// review states go with it.
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := requireConfirmation(r); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.decks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info("deck deleted", slog.Int64("deck_id", id))
	w.WriteHeader(http.StatusNoContent)
}
