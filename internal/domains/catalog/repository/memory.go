package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"library-backend/internal/domains/catalog/model"
)

// MemoryRepository is an in-process implementation of RepositoryInterface,
// used by tests and local runs without a database.
//
// Concurrency model: map membership is guarded by mu; every read or write of
// a book's fields happens under that book's own mutex, so borrows of
// different titles never contend, mirroring the row lock the PostgreSQL
// engine takes.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]*model.Book
	locks sync.Map // book id -> *sync.Mutex
}

// NewMemoryRepository creates an empty in-memory catalog.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		books: make(map[string]*model.Book),
	}
}

func (r *MemoryRepository) lockFor(id string) *sync.Mutex {
	actual, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func (r *MemoryRepository) get(id string) (*model.Book, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	return b, ok
}

// Create implements RepositoryInterface.Create
func (r *MemoryRepository) Create(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ID]; ok {
		return model.ErrBookAlreadyExists
	}

	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	stored := *book
	r.books[book.ID] = &stored
	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*model.Book, error) {
	book, ok := r.get(id)
	if !ok {
		return nil, model.NewBookNotFoundError(id)
	}

	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	snapshot := *book
	return &snapshot, nil
}

// List implements RepositoryInterface.List
func (r *MemoryRepository) List(_ context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	r.mu.RLock()
	candidates := make([]*model.Book, 0, len(r.books))
	for _, b := range r.books {
		candidates = append(candidates, b)
	}
	r.mu.RUnlock()

	matched := make([]model.Book, 0, len(candidates))
	search := strings.ToLower(filter.Search)
	for _, b := range candidates {
		lock := r.lockFor(b.ID)
		lock.Lock()
		snapshot := *b
		lock.Unlock()

		if search != "" &&
			!strings.Contains(strings.ToLower(snapshot.Title), search) &&
			!strings.Contains(strings.ToLower(snapshot.Author), search) {
			continue
		}
		if filter.Genre != "" && (snapshot.Genre == nil || *snapshot.Genre != filter.Genre) {
			continue
		}
		matched = append(matched, snapshot)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Title != matched[j].Title {
			return matched[i].Title < matched[j].Title
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

// Exists implements RepositoryInterface.Exists
func (r *MemoryRepository) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.get(id)
	return ok, nil
}

// GetAvailability implements RepositoryInterface.GetAvailability
func (r *MemoryRepository) GetAvailability(_ context.Context, id string) (int, error) {
	book, ok := r.get(id)
	if !ok {
		return 0, model.NewBookNotFoundError(id)
	}

	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	return book.CopiesAvailable, nil
}

// DecrementAvailability implements RepositoryInterface.DecrementAvailability.
// Check and decrement are one critical section per book.
func (r *MemoryRepository) DecrementAvailability(_ context.Context, id string) error {
	book, ok := r.get(id)
	if !ok {
		return model.NewBookNotFoundError(id)
	}

	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if book.CopiesAvailable <= 0 {
		return model.NewOutOfStockError(id)
	}

	book.CopiesAvailable--
	book.UpdatedAt = time.Now()
	return nil
}

// IncrementAvailability implements RepositoryInterface.IncrementAvailability
func (r *MemoryRepository) IncrementAvailability(_ context.Context, id string) error {
	book, ok := r.get(id)
	if !ok {
		return model.NewBookNotFoundError(id)
	}

	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	book.CopiesAvailable++
	book.UpdatedAt = time.Now()
	return nil
}
