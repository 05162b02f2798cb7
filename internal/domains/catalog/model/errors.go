package model

import (
	"errors"
	"fmt"
)

var (
	// ErrBookNotFound is returned when a book id is unknown.
	ErrBookNotFound = errors.New("book not found")

	// ErrBookAlreadyExists is returned when ingesting a duplicate ISBN.
	ErrBookAlreadyExists = errors.New("book already exists")

	// ErrOutOfStock is returned when a borrow is attempted with zero
	// available copies. Recoverable; no state change happens.
	ErrOutOfStock = errors.New("no copies available")

	// ErrInvalidPayload is returned when an ingestion payload fails validation.
	ErrInvalidPayload = errors.New("invalid book payload")
)

// NewBookNotFoundError creates a detailed not found error.
func NewBookNotFoundError(id string) error {
	return fmt.Errorf("%w: id=%s", ErrBookNotFound, id)
}

// NewOutOfStockError creates an out of stock error for a book.
func NewOutOfStockError(id string) error {
	return fmt.Errorf("%w: id=%s", ErrOutOfStock, id)
}

// IsNotFoundError checks if err is a book not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookNotFound)
}

// IsOutOfStockError checks if err is an out of stock error.
func IsOutOfStockError(err error) bool {
	return errors.Is(err, ErrOutOfStock)
}
