package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// CardHandler serves /card and the per-card review endpoints.
type CardHandler struct {
	cards      service.CardService
	scheduler  service.Scheduler
	pagination config.PaginationConfig
	logger     *slog.Logger
	now        func() time.Time
}

// NewCardHandler creates a CardHandler. Grades submitted through it go
// through scheduler, the only writer of review state.
func NewCardHandler(
	cards service.CardService,
	scheduler service.Scheduler,
	pagination config.PaginationConfig,
	logger *slog.Logger,
) *CardHandler {
	if cards == nil {
		panic("cards cannot be nil for CardHandler")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cards:      cards,
		scheduler:  scheduler,
		pagination: pagination,
		logger:     logger.With(slog.String("component", "card_handler")),
		now:        time.Now,
	}
}

func (h *CardHandler) Routes(r chi.Router) {
	r.Route("/card", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/fsrs", h.GetReviewState)
		r.Patch("/{id}/fsrs", h.SubmitGrade)
	})
}

// List handles GET /card?deck_id=&learn=&qn=&qs=. With learn=true only
// cards due now are returned, earliest due first.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	deckID, err := queryID(r, "deck_id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	page, err := shared.ParsePage(r, h.pagination)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	query := service.CardQuery{DeckID: deckID, Learn: shared.QueryBool(r, "learn")}

	cards, err := h.cards.List(r.Context(), query, page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	card, err := h.cards.Create(r.Context(), service.CreateCardParams{
		DeckID:     req.DeckID,
		TemplateID: req.TemplateID,
		Front:      req.Front,
		Back:       req.Back,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("card created",
		slog.Int64("card_id", card.ID),
		slog.Int64("deck_id", card.DeckID))
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	card, err := h.cards.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req UpdateCardRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	card, err := h.cards.Update(r.Context(), id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := requireConfirmation(r); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.cards.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetReviewState handles GET /card/{id}/fsrs.
func (h *CardHandler) GetReviewState(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	state, err := h.cards.ReviewState(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// SubmitGrade handles PATCH /card/{id}/fsrs with a {date, grade} body and
// responds with the card's new review state and the review log.
func (h *CardHandler) SubmitGrade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req GradeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	result, err := h.scheduler.SubmitGrade(r.Context(), id, req.Grade, req.ReviewTime(h.now))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("grade submitted",
		slog.Int64("card_id", id),
		slog.String("grade", req.Grade.String()),
		slog.Time("due", result.State.Due))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
