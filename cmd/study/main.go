// study is a terminal client that runs one study session over a deck.
//
// Usage:
//
//	study --deck <id> [--config file] [--limit n] [--verbose]
//
// Keys (in the session):
//
//	<enter>, f, flip      Reveal the back of the card
//	1-4, again ... easy   Grade the revealed card
//	s, status             Show progress
//	q, quit               Abandon the session and exit
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/study"
)

type options struct {
	configPath string
	deckID     int64
	limit      int
	verbose    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("study", flag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to a config file (default ./config.yaml if present)")
	fs.Int64VarP(&opts.deckID, "deck", "d", 0, "deck to study (required)")
	fs.IntVarP(&opts.limit, "limit", "n", -1, "maximum cards in the session (default from config)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of warn")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.deckID <= 0 {
		return options{}, errors.New("--deck is required and must be positive")
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !opts.verbose {
		cfg.Server.LogLevel = "warn"
	}
	log := logger.SetupWithWriter(cfg.Server, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	stateStore := postgres.NewPostgresReviewStateStore(db, log)
	algo, err := srs.NewServiceWithParams(&srs.Params{
		DesiredRetention: cfg.Scheduler.DesiredRetention,
		MaximumInterval:  cfg.Scheduler.MaximumInterval,
		EnableShortTerm:  cfg.Scheduler.EnableShortTerm,
		EnableFuzz:       cfg.Scheduler.EnableFuzz,
	})
	if err != nil {
		return fmt.Errorf("failed to create scheduling service: %w", err)
	}

	emitter := newEventEmitter(log)

	limit := cfg.Study.QueueLimit
	if opts.limit >= 0 {
		limit = opts.limit
	}
	session, err := study.NewSession(fmt.Sprintf("cli-%d", os.Getpid()), opts.deckID, study.Deps{
		Due:       service.NewDueQuery(stateStore, log),
		Scheduler: service.NewScheduler(db, stateStore, algo, emitter, log),
		Renderer: service.NewCardRenderer(
			postgres.NewPostgresTemplateStore(db, log),
			postgres.NewPostgresMediaStore(db, log),
			log,
		),
	}, study.Options{
		QueueLimit: limit,
		PageSize:   cfg.Pagination.MaxPageSize,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	return newREPL(session, line, os.Stdout).Run(ctx)
}

// newEventEmitter builds the emitter the scheduler publishes review logs to.
func newEventEmitter(log *slog.Logger) *events.InMemoryEventEmitter {
	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(events.NewLoggingHandler(log))
	return emitter
}
