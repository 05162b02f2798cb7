package service

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/repository"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	availabilityCacheKeyPrefix = "catalog:availability:"
	availabilityCacheTTL       = 30 * time.Second
)

type CatalogService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService creates a new catalog service. The cache may be nil, in which
// case every availability read goes to the repository.
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

// CreateBook implements ServiceInterface.CreateBook
func (s *CatalogService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPayload, err)
	}

	book := model.Book{
		ID:              req.ID,
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublishedYear:   req.PublishedYear,
		CopiesTotal:     req.Copies,
		CopiesAvailable: req.Copies,
	}

	if err := s.repo.Create(ctx, &book); err != nil {
		return nil, err
	}

	response := book.ToResponse()
	return &response, nil
}

// GetBook implements ServiceInterface.GetBook
func (s *CatalogService) GetBook(ctx context.Context, id string) (*model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := book.ToResponse()
	return &response, nil
}

// ListBooks implements ServiceInterface.ListBooks
func (s *CatalogService) ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error) {
	books, totalItems, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	totalPages := (totalItems + req.Limit - 1) / req.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &model.ListBooksResponse{
		Items:      model.ToResponseList(books),
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

// GetAvailability implements ServiceInterface.GetAvailability.
// The count is cached with a short TTL; borrow/return invalidate it, so the
// cache only ever lags by one eviction window under races.
func (s *CatalogService) GetAvailability(ctx context.Context, id string) (*model.AvailabilityResponse, error) {
	cacheKey := availabilityCacheKeyPrefix + id

	if s.cache != nil {
		var cached model.AvailabilityResponse
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Error("availability cache read failed", err)
		}
		if found {
			return &cached, nil
		}
	}

	available, err := s.repo.GetAvailability(ctx, id)
	if err != nil {
		return nil, err
	}

	response := &model.AvailabilityResponse{
		BookID:    id,
		Available: available,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, availabilityCacheTTL); err != nil {
			logger.Error("availability cache write failed", err)
		}
	}

	return response, nil
}

// InvalidateAvailability implements ServiceInterface.InvalidateAvailability
func (s *CatalogService) InvalidateAvailability(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, availabilityCacheKeyPrefix+id); err != nil {
		logger.Error("availability cache invalidation failed", err)
	}
}
