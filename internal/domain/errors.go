// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// It is wrapped with a more specific message naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidGrade is returned when a grade is outside Again, Hard, Good, Easy.
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrInvalidState is returned when a review state enumeration value is unknown.
	ErrInvalidState = errors.New("invalid review state")

	// ErrInvalidPage is returned when pagination parameters are out of range.
	ErrInvalidPage = fmt.Errorf("%w: invalid page", ErrValidation)
)

// validationError wraps ErrValidation with the name of the failing field.
func validationError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
