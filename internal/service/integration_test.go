//go:build integration

package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pgServices struct {
	decks     DeckService
	media     MediaService
	cards     CardService
	scheduler Scheduler
	due       DueQuery
	states    store.ReviewStateStore
}

func newPGServices(t *testing.T, db *sql.DB) *pgServices {
	t.Helper()
	logger := slog.Default()

	deckStore := postgres.NewPostgresDeckStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)
	stateStore := postgres.NewPostgresReviewStateStore(db, logger)
	mediaStore := postgres.NewPostgresMediaStore(db, logger)

	decks, err := NewDeckService(deckStore, logger)
	require.NoError(t, err)
	media, err := NewMediaService(mediaStore, logger)
	require.NoError(t, err)
	cards, err := NewCardService(db, cardStore, stateStore, mediaStore, logger)
	require.NoError(t, err)
	algo, err := srs.NewDefaultService()
	require.NoError(t, err)

	return &pgServices{
		decks:     decks,
		media:     media,
		cards:     cards,
		scheduler: NewScheduler(db, stateStore, algo, nil, logger),
		due:       NewDueQuery(stateStore, logger),
		states:    stateStore,
	}
}

func basicTemplateID(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.QueryRow(`SELECT id FROM template WHERE name = 'Basic'`).Scan(&id))
	return id
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestIntegration_CreatedCardIsNewAndDue(t *testing.T) {
	db := testdb.Open(t)
	testdb.Reset(t, db)
	svc := newPGServices(t, db)
	ctx := context.Background()

	deck, err := svc.decks.Create(ctx, "Spanish")
	require.NoError(t, err)
	card, err := svc.cards.Create(ctx, CreateCardParams{
		DeckID: deck.ID, TemplateID: basicTemplateID(t, db), Front: "hola", Back: "hello",
	})
	require.NoError(t, err)

	state, err := svc.cards.ReviewState(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateNew, state.State)
	assert.False(t, state.Due.After(time.Now()))

	due, err := svc.due.DueCards(ctx, &deck.ID, time.Now(), domain.DefaultPage())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, card.ID, due[0].ID)
}

func TestIntegration_ConcurrentGradesSerialize(t *testing.T) {
	db := testdb.Open(t)
	testdb.Reset(t, db)
	svc := newPGServices(t, db)
	ctx := context.Background()

	deck, err := svc.decks.Create(ctx, "Kanji")
	require.NoError(t, err)
	card, err := svc.cards.Create(ctx, CreateCardParams{
		DeckID: deck.ID, TemplateID: basicTemplateID(t, db), Front: "山", Back: "mountain",
	})
	require.NoError(t, err)

	const workers = 8
	reviewTime := time.Now().UTC()
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.scheduler.SubmitGrade(ctx, card.ID, domain.GradeGood, reviewTime)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	state, err := svc.states.Get(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, state.Reps, "every grade must build on the previous one")
}

func TestIntegration_DeckDeleteCascades(t *testing.T) {
	db := testdb.Open(t)
	testdb.Reset(t, db)
	svc := newPGServices(t, db)
	ctx := context.Background()

	deck, err := svc.decks.Create(ctx, "Capitals")
	require.NoError(t, err)
	m, err := svc.media.Create(ctx, "/media/paris.png", "image/png", 1024)
	require.NoError(t, err)
	card, err := svc.cards.Create(ctx, CreateCardParams{
		DeckID: deck.ID, TemplateID: basicTemplateID(t, db), Front: "France {{media:" + strconv.FormatInt(m.ID, 10) + "}}", Back: "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, db, `SELECT count(*) FROM card_media WHERE card_id = $1`, card.ID))

	require.NoError(t, svc.decks.Delete(ctx, deck.ID))

	assert.Equal(t, 0, countRows(t, db, `SELECT count(*) FROM card WHERE deck_id = $1`, deck.ID))
	assert.Equal(t, 0, countRows(t, db, `SELECT count(*) FROM fsrs WHERE card_id = $1`, card.ID))
	assert.Equal(t, 0, countRows(t, db, `SELECT count(*) FROM card_media WHERE card_id = $1`, card.ID))
	assert.Equal(t, 1, countRows(t, db, `SELECT count(*) FROM media WHERE id = $1`, m.ID))

	_, err = svc.scheduler.SubmitGrade(ctx, card.ID, domain.GradeGood, time.Now())
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestIntegration_UnknownMediaRollsBackCard(t *testing.T) {
	db := testdb.Open(t)
	testdb.Reset(t, db)
	svc := newPGServices(t, db)
	ctx := context.Background()

	deck, err := svc.decks.Create(ctx, "Broken")
	require.NoError(t, err)
	_, err = svc.cards.Create(ctx, CreateCardParams{
		DeckID: deck.ID, TemplateID: basicTemplateID(t, db), Front: "{{media:424242}}",
	})
	assert.ErrorIs(t, err, ErrUnknownMedia)
	assert.Equal(t, 0, countRows(t, db, `SELECT count(*) FROM card`))
	assert.Equal(t, 0, countRows(t, db, `SELECT count(*) FROM fsrs`))
}
