package repository

import (
	"context"
	"time"

	"library-backend/internal/domains/loan/model"
)

// RepositoryInterface is the data access contract for the loan ledger.
//
// CreateBorrow and MarkReturned own the availability mutation: the
// check-and-decrement (borrow) and the idempotency-guarded increment
// (return) happen inside the same critical section as the ledger write, so a
// failure never leaves partial state.
type RepositoryInterface interface {
	// CreateBorrow atomically consumes one available copy and inserts the
	// loan. Fails with catalog ErrBookNotFound / ErrOutOfStock; on failure
	// no loan is created and availability is unchanged.
	CreateBorrow(ctx context.Context, loan *model.Loan) error

	// MarkReturned closes an open loan and restores one copy. Fails with
	// ErrLoanNotFound / ErrLoanAlreadyReturned; a double return never
	// increments twice.
	MarkReturned(ctx context.Context, loanID int64, returnedAt time.Time) (*model.Loan, error)

	GetByID(ctx context.Context, id int64) (*model.Loan, error)

	// ListByMember returns the member's loans in insertion order, joined
	// with book display fields.
	ListByMember(ctx context.Context, memberID int64, filter model.ListLoansRequest) ([]model.LoanView, int, error)

	// ListOverdue returns open loans due strictly before asOf, ordered by
	// due date, joined with member and book display fields.
	ListOverdue(ctx context.Context, asOf time.Time, filter model.ListOverdueRequest) ([]model.OverdueLoanView, int, error)

	// MarkOverdue persists status=overdue on open loans due before asOf
	// and reports how many rows changed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}
