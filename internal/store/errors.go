package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or violates a
	// check, not-null or foreign key constraint, such as a card referencing a
	// deck that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is returned when the database aborted a transaction because of
	// a serialization failure or deadlock. The operation was not applied and
	// can be retried.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrTransactionFailed is returned when a transaction could not begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrDeckNotFound        = fmt.Errorf("%w: deck", ErrNotFound)
	ErrTemplateNotFound    = fmt.Errorf("%w: template", ErrNotFound)
	ErrCardNotFound        = fmt.Errorf("%w: card", ErrNotFound)
	ErrMediaNotFound       = fmt.Errorf("%w: media", ErrNotFound)
	ErrReviewStateNotFound = fmt.Errorf("%w: review state", ErrNotFound)
)

// IsNotFoundError reports whether err is ErrNotFound or one of its entity variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsRetryable reports whether the operation failed without effect and may be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrTransactionFailed)
}

// StoreError is a store failure with the entity and operation that produced it.
type StoreError struct {
	Entity    string // The entity type (e.g., "deck", "card")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
