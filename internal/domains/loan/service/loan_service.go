package service

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	catalogService "library-backend/internal/domains/catalog/service"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
	membershipModel "library-backend/internal/domains/membership/model"
	membershipService "library-backend/internal/domains/membership/service"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	overdueCacheKeyPrefix = "loans:overdue:"
	overdueCachePattern   = "loans:overdue:*"
	overdueCacheTTL       = 60 * time.Second
)

type LoanService struct {
	repo    repository.RepositoryInterface
	catalog catalogService.ServiceInterface
	members membershipService.ServiceInterface
	cache   cache.Cache
	config  config.LoanConfig
}

// NewService creates a new loan service. The cache may be nil, in which case
// overdue listings always go to the repository.
func NewService(
	repo repository.RepositoryInterface,
	catalog catalogService.ServiceInterface,
	members membershipService.ServiceInterface,
	cache cache.Cache,
	cfg config.LoanConfig,
) ServiceInterface {
	return &LoanService{
		repo:    repo,
		catalog: catalog,
		members: members,
		cache:   cache,
		config:  cfg,
	}
}

// Borrow implements ServiceInterface.Borrow
func (s *LoanService) Borrow(ctx context.Context, req model.BorrowRequest) (*model.LoanResponse, error) {
	exists, err := s.members.Exists(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify member: %w", err)
	}
	if !exists {
		return nil, membershipModel.NewMemberNotFoundError(req.MemberID)
	}

	loanDate := time.Now()
	if req.LoanDate != nil {
		loanDate = *req.LoanDate
	}

	loan := model.Loan{
		MemberID: req.MemberID,
		BookID:   req.BookID,
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, s.config.PeriodDays),
		Status:   model.StatusBorrowed,
	}

	if err := s.repo.CreateBorrow(ctx, &loan); err != nil {
		return nil, err
	}

	s.catalog.InvalidateAvailability(ctx, req.BookID)

	response := loan.ToResponse()
	return &response, nil
}

// Return implements ServiceInterface.Return
func (s *LoanService) Return(ctx context.Context, loanID int64, req model.ReturnRequest) (*model.LoanResponse, error) {
	returnedAt := time.Now()
	if req.ReturnDate != nil {
		returnedAt = *req.ReturnDate
	}

	loan, err := s.repo.MarkReturned(ctx, loanID, returnedAt)
	if err != nil {
		return nil, err
	}

	s.catalog.InvalidateAvailability(ctx, loan.BookID)
	s.invalidateOverdueCache(ctx)

	response := loan.ToResponse()
	return &response, nil
}

// GetLoan implements ServiceInterface.GetLoan
func (s *LoanService) GetLoan(ctx context.Context, id int64) (*model.LoanResponse, error) {
	loan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := loan.ToResponse()
	return &response, nil
}

// ListForMember implements ServiceInterface.ListForMember
func (s *LoanService) ListForMember(ctx context.Context, memberID int64, req model.ListLoansRequest) (*model.ListLoansResponse, error) {
	exists, err := s.members.Exists(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify member: %w", err)
	}
	if !exists {
		return nil, membershipModel.NewMemberNotFoundError(memberID)
	}

	views, totalItems, err := s.repo.ListByMember(ctx, memberID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	return &model.ListLoansResponse{
		Items:      views,
		TotalItems: totalItems,
		TotalPages: totalPages(totalItems, req.Limit),
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

// ListOverdue implements ServiceInterface.ListOverdue.
// Pages are cached per (as_of date, page, limit) with a short TTL; returns
// and sweeps invalidate the whole prefix.
func (s *LoanService) ListOverdue(ctx context.Context, req model.ListOverdueRequest) (*model.ListOverdueResponse, error) {
	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	cacheKey := fmt.Sprintf("%s%s:p%d:l%d",
		overdueCacheKeyPrefix, asOf.Format("2006-01-02"), req.Page, req.Limit)

	if s.cache != nil {
		var cached model.ListOverdueResponse
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Error("overdue cache read failed", err)
		}
		if found {
			return &cached, nil
		}
	}

	views, totalItems, err := s.repo.ListOverdue(ctx, asOf, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	response := &model.ListOverdueResponse{
		AsOf:       asOf,
		Items:      views,
		TotalItems: totalItems,
		TotalPages: totalPages(totalItems, req.Limit),
		Page:       req.Page,
		Limit:      req.Limit,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, overdueCacheTTL); err != nil {
			logger.Error("overdue cache write failed", err)
		}
	}

	return response, nil
}

// MarkOverdue implements ServiceInterface.MarkOverdue
func (s *LoanService) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	changed, err := s.repo.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue loans: %w", err)
	}

	if changed > 0 {
		s.invalidateOverdueCache(ctx)
	}

	return changed, nil
}

func (s *LoanService) invalidateOverdueCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.DeletePattern(ctx, overdueCachePattern); err != nil {
		logger.Error("overdue cache invalidation failed", err)
	}
}

func totalPages(totalItems, limit int) int {
	pages := (totalItems + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}
	return pages
}
