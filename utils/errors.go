package utils

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all operations.
var (
	// ErrNotFound is returned when a referenced customer, project or
	// milestone does not exist.
	ErrNotFound = errors.New("referenced record not found")

	// ErrStorage is returned on connectivity or query failures.
	ErrStorage = errors.New("storage operation failed")

	// ErrValidation is returned for malformed input, e.g. an unknown
	// invoice template type or a claim percentage outside 0-100.
	ErrValidation = errors.New("invalid input")
)

// OpError wraps a sentinel error with the failing operation and detail text.
type OpError struct {
	Op      string
	Err     error
	Details string
}

func (e *OpError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// E builds an OpError. Kept short because it appears on most error paths.
func E(op string, err error, details string) *OpError {
	return &OpError{Op: op, Err: err, Details: details}
}
