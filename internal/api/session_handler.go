package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/study"
)

// SessionHandler exposes study sessions over HTTP. Sessions live in the
// registry for the lifetime of the process.
type SessionHandler struct {
	sessions *study.Registry
	logger   *slog.Logger
	now      func() time.Time
}

func NewSessionHandler(sessions *study.Registry, logger *slog.Logger) *SessionHandler {
	if sessions == nil {
		panic("sessions cannot be nil for SessionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "session_handler")),
		now:      time.Now,
	}
}

func (h *SessionHandler) Routes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Abandon)
		r.Post("/{id}/start", h.Start)
		r.Post("/{id}/flip", h.Flip)
		r.Post("/{id}/grade", h.Grade)
	})
}

// Create handles POST /session. The session is started right away; a session
// that fails to start is discarded.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	s, err := h.sessions.Create(req.DeckID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	view, err := s.Start(r.Context(), req.AsOfTime())
	if err != nil {
		if _, rmErr := h.sessions.Remove(s.ID()); rmErr != nil {
			log.Warn("failed to discard session", slog.String("session_id", s.ID()), slog.String("error", rmErr.Error()))
		}
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, s.View())
}

// Start handles POST /session/{id}/start, which restarts an Empty session.
// The body is optional.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req StartSessionRequest
	if err := decodeRequest(w, r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		HandleAPIError(w, r, err)
		return
	}
	var asOf time.Time
	if req.AsOf != nil {
		asOf = time.UnixMilli(*req.AsOf).UTC()
	}
	view, err := s.Start(r.Context(), asOf)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

func (h *SessionHandler) Flip(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	view, err := s.Flip()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Grade handles POST /session/{id}/grade with the same body as
// PATCH /card/{id}/fsrs.
func (h *SessionHandler) Grade(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req GradeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	view, err := s.Grade(r.Context(), req.Grade, req.ReviewTime(h.now))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Abandon handles DELETE /session/{id}. It ends an active session without
// touching review state and returns the final view.
func (h *SessionHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Remove(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
