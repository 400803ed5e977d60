package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var dueCardColumnNames = []string{
	"id", "deck_id", "template_id", "front", "back", "create_at",
	"card_id", "due", "stability", "difficulty", "scheduled_days",
	"learning_steps", "reps", "lapses", "state", "last_review", "elapsed_days",
}

var reviewStateColumnNames = dueCardColumnNames[6:]
