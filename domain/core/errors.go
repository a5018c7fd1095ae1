package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Classification errors
	ErrEmptyEthnicity  = errors.New("ethnicity set is empty")
	ErrUnsupportedOnly = errors.New("ethnicity set contains only values not supported for race classification")

	// Validation errors
	ErrInvalidProfile = errors.New("invalid profile")
	ErrInvalidReply   = errors.New("invalid who-last-replied value")

	// Baseline errors
	ErrEmptyBaseline = errors.New("empty demographic baseline")

	// Run-level analysis conditions
	ErrDegenerateDistribution = errors.New("degenerate preference distribution")
	ErrInsufficientData       = errors.New("insufficient data for analysis")

	// Ingestion errors
	ErrSchemaMismatch = errors.New("input schema mismatch")
)

// Error constructors with context
func NewProfileError(name string, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidProfile, name, reason)
}

func NewSchemaError(path string, reason string) error {
	return fmt.Errorf("%w in %s: %s", ErrSchemaMismatch, path, reason)
}

// Error checking helpers
func IsClassificationError(err error) bool {
	return errors.Is(err, ErrEmptyEthnicity) || errors.Is(err, ErrUnsupportedOnly)
}

func IsFatalInputError(err error) bool {
	return errors.Is(err, ErrEmptyBaseline) || errors.Is(err, ErrSchemaMismatch)
}

// IsReportableCondition reports whether err is a run-level condition that should
// surface as a "not enough data" section instead of aborting the run.
func IsReportableCondition(err error) bool {
	return errors.Is(err, ErrDegenerateDistribution) || errors.Is(err, ErrInsufficientData)
}
