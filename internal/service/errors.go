package service

import (
	"errors"
	"fmt"
)

// Service errors are returned wrapped in *ServiceError; callers classify them
// with errors.Is against these sentinels or the store/domain sentinels the
// ServiceError wraps.
var (
	// ErrUnknownMedia is returned when card text references a media ID that
	// does not exist. It wraps domain.ErrValidation at the call site.
	ErrUnknownMedia = errors.New("unknown media reference")
)

// ServiceError records which service operation failed and why.
type ServiceError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Entity, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(entity, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
