package service

import (
	"context"

	"library-backend/internal/domains/membership/model"
)

// ServiceInterface is the membership business logic contract.
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterMemberRequest) (*model.MemberResponse, error)
	GetMember(ctx context.Context, id int64) (*model.MemberResponse, error)
	ListMembers(ctx context.Context, req model.ListMembersRequest) (*model.ListMembersResponse, error)

	// Exists is the referential-integrity guard consumed by the loan flow.
	Exists(ctx context.Context, id int64) (bool, error)
}
