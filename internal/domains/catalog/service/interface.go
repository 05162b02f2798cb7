package service

import (
	"context"

	"library-backend/internal/domains/catalog/model"
)

// ServiceInterface is the catalog business logic contract.
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	GetBook(ctx context.Context, id string) (*model.BookResponse, error)
	ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error)
	GetAvailability(ctx context.Context, id string) (*model.AvailabilityResponse, error)

	// InvalidateAvailability drops the cached availability for a book.
	// Called by the loan flow after a borrow or return mutates the count.
	InvalidateAvailability(ctx context.Context, id string)
}
