package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/phrazzld/flashdeck/internal/api"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
)

// setupRouter mounts every handler under /api behind the standard
// middleware stack.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
	}).Handler)

	pagination := app.config.Pagination
	r.Route("/api", func(r chi.Router) {
		api.NewDeckHandler(app.decks, pagination, app.logger).Routes(r)
		api.NewTemplateHandler(app.templates, pagination, app.logger).Routes(r)
		api.NewMediaHandler(app.media, pagination, app.logger).Routes(r)
		api.NewCardHandler(app.cards, app.scheduler, pagination, app.logger).Routes(r)
		api.NewSessionHandler(app.sessions, app.logger).Routes(r)
	})

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	api.NewHealthHandler(pinger, app.logger).Routes(r)

	return r
}
