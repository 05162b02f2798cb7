package repository

import (
	"context"
	"sync"
	"time"

	catalogRepository "library-backend/internal/domains/catalog/repository"
	"library-backend/internal/domains/loan/model"
	membershipRepository "library-backend/internal/domains/membership/repository"
)

// MemoryRepository is the in-memory ledger engine, used by tests and by
// deployments without a database. It composes the catalog repository for the
// availability half of borrow/return, so the atomicity guarantee lives in one
// place per engine.
//
// Lock order: catalog's per-book lock is taken (inside Decrement/Increment)
// before r.mu. Nothing holds r.mu while calling into the catalog repository,
// so the order cannot invert.
type MemoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	loans    map[int64]*model.Loan
	byMember map[int64][]int64
	index    *OverdueIndex

	books   catalogRepository.RepositoryInterface
	members membershipRepository.RepositoryInterface
}

// NewMemoryRepository creates an empty in-memory ledger backed by the given
// catalog and membership repositories.
func NewMemoryRepository(books catalogRepository.RepositoryInterface, members membershipRepository.RepositoryInterface) *MemoryRepository {
	return &MemoryRepository{
		nextID:   1,
		loans:    make(map[int64]*model.Loan),
		byMember: make(map[int64][]int64),
		index:    NewOverdueIndex(),
		books:    books,
		members:  members,
	}
}

// CreateBorrow implements RepositoryInterface.CreateBorrow. The decrement
// carries the check: if it fails, no ledger state has been touched yet.
func (r *MemoryRepository) CreateBorrow(ctx context.Context, loan *model.Loan) error {
	if err := r.books.DecrementAvailability(ctx, loan.BookID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	loan.ID = r.nextID
	r.nextID++
	loan.UpdatedAt = time.Now()

	stored := *loan
	r.loans[loan.ID] = &stored
	r.byMember[loan.MemberID] = append(r.byMember[loan.MemberID], loan.ID)
	r.index.Insert(loan.DueDate, loan.ID)

	return nil
}

// MarkReturned implements RepositoryInterface.MarkReturned. The idempotency
// check and the ledger mutation sit in the same critical section; the
// availability increment runs only on the first transition, after the loan is
// already closed, so a concurrent second return sees ReturnedAt set and stops.
// If the increment fails the loan is reopened, so a failed return leaves both
// the ledger and availability unchanged.
func (r *MemoryRepository) MarkReturned(ctx context.Context, loanID int64, returnedAt time.Time) (*model.Loan, error) {
	r.mu.Lock()

	loan, ok := r.loans[loanID]
	if !ok {
		r.mu.Unlock()
		return nil, model.NewLoanNotFoundError(loanID)
	}
	if !loan.IsOpen() {
		r.mu.Unlock()
		return nil, model.ErrLoanAlreadyReturned
	}

	prevStatus := loan.Status
	at := returnedAt
	loan.ReturnedAt = &at
	loan.Status = model.StatusReturned
	loan.UpdatedAt = time.Now()
	r.index.Remove(loan.DueDate, loan.ID)

	closed := *loan
	r.mu.Unlock()

	if err := r.books.IncrementAvailability(ctx, closed.BookID); err != nil {
		r.mu.Lock()
		loan.ReturnedAt = nil
		loan.Status = prevStatus
		loan.UpdatedAt = time.Now()
		r.index.Insert(loan.DueDate, loan.ID)
		r.mu.Unlock()
		return nil, err
	}

	return &closed, nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loan, ok := r.loans[id]
	if !ok {
		return nil, model.NewLoanNotFoundError(id)
	}

	snapshot := *loan
	return &snapshot, nil
}

// ListByMember implements RepositoryInterface.ListByMember
func (r *MemoryRepository) ListByMember(ctx context.Context, memberID int64, filter model.ListLoansRequest) ([]model.LoanView, int, error) {
	r.mu.Lock()
	ids := r.byMember[memberID]
	page := make([]model.Loan, 0, filter.Limit)
	totalCount := len(ids)

	start := (filter.Page - 1) * filter.Limit
	for i := start; i < len(ids) && len(page) < filter.Limit; i++ {
		page = append(page, *r.loans[ids[i]])
	}
	r.mu.Unlock()

	views := make([]model.LoanView, 0, len(page))
	for i := range page {
		v, err := r.loanView(ctx, &page[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}

	return views, totalCount, nil
}

// ListOverdue implements RepositoryInterface.ListOverdue. The index walk is
// the whole query; nothing scans the ledger.
func (r *MemoryRepository) ListOverdue(ctx context.Context, asOf time.Time, filter model.ListOverdueRequest) ([]model.OverdueLoanView, int, error) {
	r.mu.Lock()
	ids := r.index.RangeBefore(asOf)
	totalCount := len(ids)

	start := (filter.Page - 1) * filter.Limit
	page := make([]model.Loan, 0, filter.Limit)
	for i := start; i < len(ids) && len(page) < filter.Limit; i++ {
		page = append(page, *r.loans[ids[i]])
	}
	r.mu.Unlock()

	views := make([]model.OverdueLoanView, 0, len(page))
	for i := range page {
		v, err := r.overdueView(ctx, &page[i], asOf)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}

	return views, totalCount, nil
}

// MarkOverdue implements RepositoryInterface.MarkOverdue
func (r *MemoryRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	for _, id := range r.index.RangeBefore(asOf) {
		loan := r.loans[id]
		if loan.Status != model.StatusBorrowed {
			continue
		}
		loan.Status = model.StatusOverdue
		loan.UpdatedAt = time.Now()
		changed++
	}

	return changed, nil
}

// OpenLoanCount reports how many loans are currently open, across all
// members. Used by tests to check the conservation invariant.
func (r *MemoryRepository) OpenLoanCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index.Len()
}

func (r *MemoryRepository) loanView(ctx context.Context, loan *model.Loan) (model.LoanView, error) {
	book, err := r.books.GetByID(ctx, loan.BookID)
	if err != nil {
		return model.LoanView{}, err
	}

	return model.LoanView{
		LoanResponse: loan.ToResponse(),
		BookTitle:    book.Title,
		BookAuthor:   book.Author,
	}, nil
}

func (r *MemoryRepository) overdueView(ctx context.Context, loan *model.Loan, asOf time.Time) (model.OverdueLoanView, error) {
	book, err := r.books.GetByID(ctx, loan.BookID)
	if err != nil {
		return model.OverdueLoanView{}, err
	}
	member, err := r.members.GetByID(ctx, loan.MemberID)
	if err != nil {
		return model.OverdueLoanView{}, err
	}

	return model.OverdueLoanView{
		LoanID:      loan.ID,
		MemberID:    loan.MemberID,
		MemberName:  member.FullName,
		MemberEmail: member.Email,
		BookID:      loan.BookID,
		BookTitle:   book.Title,
		BookAuthor:  book.Author,
		LoanDate:    loan.LoanDate,
		DueDate:     loan.DueDate,
		DaysOverdue: daysBetween(loan.DueDate, asOf),
	}, nil
}

var _ RepositoryInterface = (*MemoryRepository)(nil)
