package study

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// defaultPageSize is the batch size used to page through due cards.
const defaultPageSize = 100

// Deps are the collaborators a session reads from and writes through.
type Deps struct {
	Due       service.DueQuery
	Scheduler service.Scheduler
	Renderer  service.CardRenderer
}

// Options tune a session.
type Options struct {
	// QueueLimit caps the number of cards loaded at start. Zero means no cap.
	QueueLimit int
	// PageSize is the batch size used when paging through due cards.
	PageSize int
	Logger   *slog.Logger
	Now      func() time.Time
}

// View is a snapshot of a session. Card is set while a card is shown; its
// Back is only filled in once the card has been flipped.
type View struct {
	ID         string               `json:"id"`
	DeckID     int64                `json:"deck_id"`
	State      State                `json:"state"`
	Position   int                  `json:"position"`
	Total      int                  `json:"total"`
	Graded     int                  `json:"graded"`
	Card       *CardView            `json:"card,omitempty"`
	LastResult *service.GradeResult `json:"last_result,omitempty"`
}

// CardView is the current card as exposed to the learner.
type CardView struct {
	ID     int64              `json:"id"`
	Front  string             `json:"front"`
	Back   string             `json:"back,omitempty"`
	Review domain.ReviewState `json:"fsrs"`
}

type queuedCard struct {
	card     domain.DueCard
	rendered domain.RenderedCard
}

// Session is one study session over a deck. All methods are safe for
// concurrent use; actions on the same session run one at a time.
type Session struct {
	id     string
	deckID int64
	deps   Deps
	opts   Options
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	queue      []queuedCard
	pos        int
	graded     int
	last       *service.GradeResult
	lastActive time.Time
	observers  []func(Transition)
}

// NewSession creates an Idle session for deckID.
func NewSession(id string, deckID int64, deps Deps, opts Options) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	if deckID <= 0 {
		return nil, fmt.Errorf("%w: deck_id must be positive", domain.ErrValidation)
	}
	if deps.Due == nil || deps.Scheduler == nil || deps.Renderer == nil {
		return nil, fmt.Errorf("%w: due query, scheduler and renderer are required", domain.ErrValidation)
	}
	if opts.QueueLimit < 0 {
		return nil, fmt.Errorf("%w: queue limit cannot be negative", domain.ErrValidation)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Session{
		id:         id,
		deckID:     deckID,
		deps:       deps,
		opts:       opts,
		logger:     opts.Logger.With(slog.String("component", "study_session"), slog.String("session_id", id)),
		state:      StateIdle,
		lastActive: opts.Now(),
	}, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// DeckID returns the deck being studied.
func (s *Session) DeckID() int64 { return s.deckID }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastActive returns the time of the last action on the session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// OnTransition registers fn to be called after every state change. Observers
// run outside the session lock, in registration order.
func (s *Session) OnTransition(fn func(Transition)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Start loads the due cards of the deck as of asOf and presents the first
// one, or moves to Empty when none are due. It is allowed from Idle and, to
// restart, from Empty. A zero asOf means now. On error the state is unchanged.
func (s *Session) Start(ctx context.Context, asOf time.Time) (View, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	if s.state != StateIdle && s.state != StateEmpty {
		defer s.mu.Unlock()
		return View{}, &TransitionError{Action: "start", State: s.state}
	}
	if asOf.IsZero() {
		asOf = s.opts.Now()
	}

	queue, err := s.loadQueue(ctx, asOf)
	if err != nil {
		s.mu.Unlock()
		log.Warn("failed to load study queue", slog.String("error", err.Error()))
		return View{}, err
	}

	s.queue = queue
	s.pos = 0
	s.graded = 0
	s.last = nil

	next := StatePresenting
	if len(queue) == 0 {
		next = StateEmpty
	}
	fire := s.moveLocked(next)
	view := s.viewLocked()
	s.mu.Unlock()
	fire()

	log.Info("study session started",
		slog.Int64("deck_id", s.deckID),
		slog.Int("cards", len(queue)),
		slog.Time("as_of", asOf))
	return view, nil
}

// Flip reveals the back of the presented card.
func (s *Session) Flip() (View, error) {
	s.mu.Lock()
	if s.state != StatePresenting {
		defer s.mu.Unlock()
		return View{}, &TransitionError{Action: "flip", State: s.state}
	}
	fire := s.moveLocked(StateRevealed)
	view := s.viewLocked()
	s.mu.Unlock()
	fire()
	return view, nil
}

// Grade submits grade for the revealed card through the scheduler and
// advances to the next card, or to Completed after the last one. A zero
// reviewTime means now. If the scheduler fails the session stays Revealed on
// the same card and the error is returned, so the grade can be retried or the
// session abandoned.
func (s *Session) Grade(ctx context.Context, grade domain.Grade, reviewTime time.Time) (View, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	if s.state != StateRevealed {
		defer s.mu.Unlock()
		return View{}, &TransitionError{Action: "grade", State: s.state}
	}
	if reviewTime.IsZero() {
		reviewTime = s.opts.Now()
	}

	current := s.queue[s.pos].card
	result, err := s.deps.Scheduler.SubmitGrade(ctx, current.ID, grade, reviewTime)
	if err != nil {
		s.lastActive = s.opts.Now()
		s.mu.Unlock()
		log.Warn("grade rejected, card stays revealed",
			slog.Int64("card_id", current.ID),
			slog.String("error", err.Error()))
		return View{}, err
	}

	s.graded++
	s.pos++
	s.last = result

	next := StatePresenting
	if s.pos >= len(s.queue) {
		next = StateCompleted
	}
	fire := s.moveLocked(next)
	view := s.viewLocked()
	s.mu.Unlock()
	fire()

	log.Debug("card graded",
		slog.Int64("card_id", current.ID),
		slog.String("grade", grade.String()),
		slog.String("next", next.String()))
	return view, nil
}

// Abandon ends the session without touching any review state. It is allowed
// from Idle, Presenting and Revealed.
func (s *Session) Abandon() (View, error) {
	s.mu.Lock()
	switch s.state {
	case StateIdle, StatePresenting, StateRevealed:
	default:
		defer s.mu.Unlock()
		return View{}, &TransitionError{Action: "abandon", State: s.state}
	}
	fire := s.moveLocked(StateAbandoned)
	view := s.viewLocked()
	s.mu.Unlock()
	fire()

	s.logger.Info("study session abandoned",
		slog.Int("graded", view.Graded),
		slog.Int("remaining", view.Total-view.Graded))
	return view, nil
}

// loadQueue pages through the due query and renders every card. Must be
// called with s.mu held.
func (s *Session) loadQueue(ctx context.Context, asOf time.Time) ([]queuedCard, error) {
	deckID := s.deckID
	limit := s.opts.QueueLimit
	page := domain.Page{Number: 1, Size: s.opts.PageSize}

	var due []domain.DueCard
	for limit == 0 || len(due) < limit {
		batch, err := s.deps.Due.DueCards(ctx, &deckID, asOf, page)
		if err != nil {
			return nil, fmt.Errorf("failed to load due cards: %w", err)
		}
		due = append(due, batch...)
		if len(batch) < page.Size {
			break
		}
		page = page.Next()
	}
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	if len(due) == 0 {
		return nil, nil
	}

	cards := make([]domain.Card, len(due))
	for i := range due {
		cards[i] = due[i].Card
	}
	rendered, err := s.deps.Renderer.RenderAll(ctx, cards)
	if err != nil {
		return nil, fmt.Errorf("failed to render study queue: %w", err)
	}
	if len(rendered) != len(due) {
		return nil, fmt.Errorf("renderer returned %d cards for %d", len(rendered), len(due))
	}

	queue := make([]queuedCard, len(due))
	for i := range due {
		queue[i] = queuedCard{card: due[i], rendered: rendered[i]}
	}
	return queue, nil
}

// moveLocked switches state and returns a function that notifies the
// observers. Call the returned function after releasing s.mu.
func (s *Session) moveLocked(to State) func() {
	t := Transition{
		SessionID: s.id,
		DeckID:    s.deckID,
		From:      s.state,
		To:        to,
		Graded:    s.graded,
		Remaining: len(s.queue) - s.pos,
	}
	s.state = to
	s.lastActive = s.opts.Now()
	if c := s.currentLocked(); c != nil {
		t.CardID = c.card.ID
	}

	s.logger.Debug("session transition",
		slog.String("from", t.From.String()),
		slog.String("to", t.To.String()),
		slog.Int64("card_id", t.CardID))

	observers := append(([]func(Transition))(nil), s.observers...)
	return func() {
		for _, fn := range observers {
			fn(t)
		}
	}
}

// currentLocked returns the card being shown, if any.
func (s *Session) currentLocked() *queuedCard {
	if s.state != StatePresenting && s.state != StateRevealed {
		return nil
	}
	return &s.queue[s.pos]
}

func (s *Session) viewLocked() View {
	v := View{
		ID:         s.id,
		DeckID:     s.deckID,
		State:      s.state,
		Total:      len(s.queue),
		Graded:     s.graded,
		LastResult: s.last,
	}
	if c := s.currentLocked(); c != nil {
		v.Position = s.pos + 1
		v.Card = &CardView{
			ID:     c.card.ID,
			Front:  c.rendered.Front,
			Review: c.card.Review,
		}
		if s.state == StateRevealed {
			v.Card.Back = c.rendered.Back
		}
	}
	return v
}
