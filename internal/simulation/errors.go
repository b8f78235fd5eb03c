package simulation

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDistribution is returned when probabilities cannot be turned into ranges
	// that cover digits 1..100 exactly once.
	ErrMalformedDistribution = errors.New("malformed distribution")

	// ErrDigitOutOfRange is returned when a supplied random digit is outside [1,100].
	ErrDigitOutOfRange = errors.New("digit out of range")

	// ErrInvalidParams is returned for scalar parameters the policy cannot run with.
	ErrInvalidParams = errors.New("invalid simulation parameters")
)

// DistributionError describes why a named distribution was rejected.
type DistributionError struct {
	Name   string
	Reason string
}

func (e *DistributionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedDistribution, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrMalformedDistribution, e.Name, e.Reason)
}

func (e *DistributionError) Unwrap() error {
	return ErrMalformedDistribution
}

// DigitError points at the offending entry of a digit stream.
type DigitError struct {
	Stream string
	Index  int
	Digit  int
}

func (e *DigitError) Error() string {
	return fmt.Sprintf("%s: %s stream position %d has %d (want %d..%d)", ErrDigitOutOfRange, e.Stream, e.Index+1, e.Digit, MinDigit, MaxDigit)
}

func (e *DigitError) Unwrap() error {
	return ErrDigitOutOfRange
}

func invalidParams(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}
