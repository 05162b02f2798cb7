package service

import (
	"context"
	"fmt"
	"strings"

	"library-backend/internal/domains/membership/model"
	"library-backend/internal/domains/membership/repository"
)

type MembershipService struct {
	repo repository.RepositoryInterface
}

// NewService creates a new membership service.
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &MembershipService{
		repo: repo,
	}
}

// Register implements ServiceInterface.Register
func (s *MembershipService) Register(ctx context.Context, req model.RegisterMemberRequest) (*model.MemberResponse, error) {
	member := model.Member{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, err
	}

	response := member.ToResponse()
	return &response, nil
}

// GetMember implements ServiceInterface.GetMember
func (s *MembershipService) GetMember(ctx context.Context, id int64) (*model.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := member.ToResponse()
	return &response, nil
}

// ListMembers implements ServiceInterface.ListMembers
func (s *MembershipService) ListMembers(ctx context.Context, req model.ListMembersRequest) (*model.ListMembersResponse, error) {
	members, totalItems, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	totalPages := (totalItems + req.Limit - 1) / req.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &model.ListMembersResponse{
		Items:      model.ToResponseList(members),
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

// Exists implements ServiceInterface.Exists
func (s *MembershipService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}
