package srs

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when scheduling parameters are out of range.
var ErrInvalidParams = errors.New("invalid scheduling parameters")

// Params defines the configurable parameters of the FSRS scheduling function.
type Params struct {
	// DesiredRetention is the target recall probability at the due time, in (0, 1].
	DesiredRetention float64

	// MaximumInterval caps the scheduled interval, in days.
	MaximumInterval int

	// EnableShortTerm keeps cards in minute-scale learning steps before they
	// graduate to day-scale reviews.
	EnableShortTerm bool

	// EnableFuzz randomises intervals slightly. With fuzz disabled the function
	// is deterministic for a given (state, grade, time).
	EnableFuzz bool
}

// NewDefaultParams returns the parameters the service uses when none are configured.
func NewDefaultParams() *Params {
	return &Params{
		DesiredRetention: 0.9,
		MaximumInterval:  36500,
		EnableShortTerm:  true,
		EnableFuzz:       false,
	}
}

// Validate checks the parameter ranges.
func (p *Params) Validate() error {
	if p.DesiredRetention <= 0 || p.DesiredRetention > 1 {
		return fmt.Errorf("%w: desired retention %v out of range (0, 1]", ErrInvalidParams, p.DesiredRetention)
	}
	if p.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval %d must be positive", ErrInvalidParams, p.MaximumInterval)
	}
	return nil
}
