package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/study"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	decks     service.DeckService
	templates service.TemplateService
	media     service.MediaService
	cards     service.CardService
	scheduler service.Scheduler
	due       service.DueQuery
	renderer  service.CardRenderer

	emitter  *events.InMemoryEventEmitter
	sessions *study.Registry
}

// newApplication builds stores, services and the session registry on top of
// an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	deckStore := postgres.NewPostgresDeckStore(db, logger)
	templateStore := postgres.NewPostgresTemplateStore(db, logger)
	mediaStore := postgres.NewPostgresMediaStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)
	stateStore := postgres.NewPostgresReviewStateStore(db, logger)

	algo, err := srs.NewServiceWithParams(schedulerParams(cfg.Scheduler))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduling service: %w", err)
	}

	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(events.NewLoggingHandler(logger))

	if app.decks, err = service.NewDeckService(deckStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}
	if app.templates, err = service.NewTemplateService(templateStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create template service: %w", err)
	}
	if app.media, err = service.NewMediaService(mediaStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create media service: %w", err)
	}
	if app.cards, err = service.NewCardService(db, cardStore, stateStore, mediaStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}
	app.scheduler = service.NewScheduler(db, stateStore, algo, app.emitter, logger)
	app.due = service.NewDueQuery(stateStore, logger)
	app.renderer = service.NewCardRenderer(templateStore, mediaStore, logger)

	app.sessions = study.NewRegistry(
		study.Deps{Due: app.due, Scheduler: app.scheduler, Renderer: app.renderer},
		app.emitter,
		study.OptionsFromConfig(cfg.Study, cfg.Pagination),
		logger,
	)

	logger.Info("application initialized",
		slog.Float64("desired_retention", cfg.Scheduler.DesiredRetention),
		slog.Int("queue_limit", cfg.Study.QueueLimit))
	return app, nil
}

func schedulerParams(cfg config.SchedulerConfig) *srs.Params {
	return &srs.Params{
		DesiredRetention: cfg.DesiredRetention,
		MaximumInterval:  cfg.MaximumInterval,
		EnableShortTerm:  cfg.EnableShortTerm,
		EnableFuzz:       cfg.EnableFuzz,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully and
// releases the application's resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	evictCtx, stopEviction := context.WithCancel(ctx)
	defer stopEviction()
	go app.sessions.Run(evictCtx)

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
