package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
		retryable bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, notFound: true},
		{name: "deck not found", err: ErrDeckNotFound, notFound: true},
		{name: "wrapped card not found", err: fmt.Errorf("get: %w", ErrCardNotFound), notFound: true},
		{name: "review state not found", err: ErrReviewStateNotFound, notFound: true},
		{name: "duplicate", err: fmt.Errorf("insert: %w", ErrDuplicate), duplicate: true},
		{name: "conflict", err: ErrConflict, retryable: true},
		{name: "transaction failed", err: fmt.Errorf("%w: commit", ErrTransactionFailed), retryable: true},
		{name: "invalid entity", err: ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.duplicate, IsDuplicateError(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := ErrCardNotFound
	err := NewStoreError("card", "update", "card does not exist", cause)

	assert.Equal(t, "update operation on card failed: card does not exist: entity not found: card", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	var storeErr *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &storeErr))
	assert.Equal(t, "card", storeErr.Entity)

	bare := NewStoreError("deck", "list", "bad page", nil)
	assert.Equal(t, "list operation on deck failed: bad page", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
