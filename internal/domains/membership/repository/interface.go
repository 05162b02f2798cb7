package repository

import (
	"context"

	"library-backend/internal/domains/membership/model"
)

// RepositoryInterface is the data access contract for member records.
// Exists is the referential-integrity guard used by the loan flow.
type RepositoryInterface interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	List(ctx context.Context, filter model.ListMembersRequest) ([]model.Member, int, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
