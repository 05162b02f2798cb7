package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberNotFound is returned when a member id is unknown.
	ErrMemberNotFound = errors.New("member not found")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
)

// NewMemberNotFoundError creates a detailed not found error.
func NewMemberNotFoundError(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrMemberNotFound, id)
}

// IsNotFoundError checks if err is a member not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrMemberNotFound)
}
