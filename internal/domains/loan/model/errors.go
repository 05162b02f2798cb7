package model

import (
	"errors"
	"fmt"
)

var (
	// ErrLoanNotFound is returned when a loan id is unknown.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrLoanAlreadyReturned is returned on a double return. Recoverable;
	// availability is not touched again.
	ErrLoanAlreadyReturned = errors.New("loan already returned")
)

// NewLoanNotFoundError creates a detailed not found error.
func NewLoanNotFoundError(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrLoanNotFound, id)
}

// IsNotFoundError checks if err is a loan not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrLoanNotFound)
}
