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

// TemplateHandler serves /template.
type TemplateHandler struct {
	templates  service.TemplateService
	pagination config.PaginationConfig
	logger     *slog.Logger
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(
	templates service.TemplateService,
	pagination config.PaginationConfig,
	logger *slog.Logger,
) *TemplateHandler {
	if templates == nil {
		panic("templates cannot be nil for TemplateHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateHandler{
		templates:  templates,
		pagination: pagination,
		logger:     logger.With(slog.String("component", "template_handler")),
	}
}

func (h *TemplateHandler) Routes(r chi.Router) {
	r.Route("/template", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := shared.ParsePage(r, h.pagination)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	templates, err := h.templates.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, templates)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	t, err := h.templates.Create(r.Context(), req.Name, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, t)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	t, err := h.templates.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req UpdateTemplateRequest
	if err := decodeRequest(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	t, err := h.templates.Update(r.Context(), id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// Delete handles DELETE /template/{id}?confirm=true. Cards using the
// template are deleted with it.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := requireConfirmation(r); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.templates.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info("template deleted", slog.Int64("template_id", id))
	w.WriteHeader(http.StatusNoContent)
}
