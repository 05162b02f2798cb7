package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"library-backend/internal/domains/membership/model"
)

// MemoryRepository is an in-process implementation of RepositoryInterface.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	members map[int64]model.Member
	emails  map[string]struct{}
}

// NewMemoryRepository creates an empty in-memory member store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:  1,
		members: make(map[int64]model.Member),
		emails:  make(map[string]struct{}),
	}
}

// Create implements RepositoryInterface.Create
func (r *MemoryRepository) Create(_ context.Context, member *model.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[member.Email]; taken {
		return model.ErrEmailTaken
	}

	member.ID = r.nextID
	member.JoinedAt = time.Now()
	r.nextID++

	r.members[member.ID] = *member
	r.emails[member.Email] = struct{}{}
	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[id]
	if !ok {
		return nil, model.NewMemberNotFoundError(id)
	}

	return &member, nil
}

// List implements RepositoryInterface.List
func (r *MemoryRepository) List(_ context.Context, filter model.ListMembersRequest) ([]model.Member, int, error) {
	r.mu.RLock()
	all := make([]model.Member, 0, len(r.members))
	for _, m := range r.members {
		all = append(all, m)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return all[start:end], total, nil
}

// Exists implements RepositoryInterface.Exists
func (r *MemoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[id]
	return ok, nil
}
