package repository

import (
	"context"

	"library-backend/internal/domains/catalog/model"
)

// RepositoryInterface is the data access contract for catalog records.
//
// DecrementAvailability is the availability-consuming half of a borrow and
// must be atomic per book: of N concurrent calls against K available copies,
// exactly min(N, K) succeed and the rest fail with ErrOutOfStock.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error)
	Exists(ctx context.Context, id string) (bool, error)

	GetAvailability(ctx context.Context, id string) (int, error)
	DecrementAvailability(ctx context.Context, id string) error
	IncrementAvailability(ctx context.Context, id string) error
}
