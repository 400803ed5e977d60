package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/events"
)

// RegistryOptions tune the sessions a Registry creates.
type RegistryOptions struct {
	QueueLimit int
	PageSize   int
	// IdleTimeout evicts sessions with no activity for this long. Zero
	// disables eviction.
	IdleTimeout time.Duration
	Now         func() time.Time
}

// OptionsFromConfig builds registry options from the study and pagination
// configuration.
func OptionsFromConfig(study config.StudyConfig, pagination config.PaginationConfig) RegistryOptions {
	return RegistryOptions{
		QueueLimit:  study.QueueLimit,
		PageSize:    pagination.MaxPageSize,
		IdleTimeout: study.SessionIdleTimeout,
	}
}

// Registry holds the live sessions of the process.
type Registry struct {
	deps    Deps
	opts    RegistryOptions
	emitter events.EventEmitter
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. The emitter may be nil.
func NewRegistry(deps Deps, emitter events.EventEmitter, opts RegistryOptions, logger *slog.Logger) *Registry {
	if deps.Due == nil || deps.Scheduler == nil || deps.Renderer == nil {
		panic("study registry requires due query, scheduler and renderer")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		deps:     deps,
		opts:     opts,
		emitter:  emitter,
		logger:   logger.With(slog.String("component", "study_registry")),
		sessions: make(map[string]*Session),
	}
}

// Create registers a new Idle session for deckID.
func (r *Registry) Create(deckID int64) (*Session, error) {
	s, err := NewSession(uuid.NewString(), deckID, r.deps, Options{
		QueueLimit: r.opts.QueueLimit,
		PageSize:   r.opts.PageSize,
		Logger:     r.logger,
		Now:        r.opts.Now,
	})
	if err != nil {
		return nil, err
	}
	s.OnTransition(r.publish)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Remove abandons the session if it is still active and forgets it. The
// returned view is the session's final state.
func (r *Registry) Remove(id string) (View, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	view, err := s.Abandon()
	if errors.Is(err, ErrInvalidTransition) {
		return s.View(), nil
	}
	return view, err
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle removes sessions idle for longer than the idle timeout,
// abandoning the active ones, and returns how many were removed.
func (r *Registry) EvictIdle() int {
	if r.opts.IdleTimeout <= 0 {
		return 0
	}
	cutoff := r.opts.Now().Add(-r.opts.IdleTimeout)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.LastActive().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		if !s.State().Terminal() {
			_, _ = s.Abandon()
		}
	}
	if len(stale) > 0 {
		r.logger.Info("evicted idle study sessions", slog.Int("count", len(stale)))
	}
	return len(stale)
}

// Run evicts idle sessions periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	if r.opts.IdleTimeout <= 0 {
		return
	}
	interval := r.opts.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle()
		}
	}
}

// publish turns session transitions into events.
func (r *Registry) publish(t Transition) {
	if r.emitter == nil {
		return
	}

	var eventType string
	switch {
	case t.From == StateIdle || t.From == StateEmpty:
		if t.To == StateAbandoned {
			eventType = events.TypeSessionAbandoned
		} else {
			eventType = events.TypeSessionStarted
		}
	case t.To == StateCompleted:
		eventType = events.TypeSessionCompleted
	case t.To == StateAbandoned:
		eventType = events.TypeSessionAbandoned
	default:
		return
	}

	event, err := events.NewEvent(eventType, events.SessionChanged{
		SessionID: t.SessionID,
		DeckID:    t.DeckID,
		Graded:    t.Graded,
		Remaining: t.Remaining,
	})
	if err != nil {
		r.logger.Error("failed to build session event", slog.String("error", err.Error()))
		return
	}
	if err := r.emitter.EmitEvent(context.Background(), event); err != nil {
		r.logger.Error("failed to emit session event",
			slog.String("session_id", t.SessionID),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
