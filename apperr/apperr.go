// Package apperr defines the error taxonomy surfaced by the services.
// Backend errors (network, permission) are never wrapped into these;
// they propagate to the caller unchanged.
package apperr

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound: a referenced id does not exist at the time of the operation.
	ErrNotFound = errors.New("record not found")
	// ErrNotAvailable: checkout attempted on gear that is not available.
	ErrNotAvailable = errors.New("gear item is not available for checkout")
	// ErrBorrowingNotAllowed: the borrower fails the admission check.
	ErrBorrowingNotAllowed = errors.New("borrower cannot borrow items at this time")
	// ErrInvalidState: operation attempted against a record in the wrong lifecycle state.
	ErrInvalidState = errors.New("record is in the wrong state for this operation")
)

// ValidationError lists every violated rule, not just the first.
type ValidationError struct {
	Rules []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Rules, ", ")
}

// Validation wraps a non-empty rule list; returns nil for an empty one.
func Validation(rules []string) error {
	if len(rules) == 0 {
		return nil
	}
	return &ValidationError{Rules: rules}
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
