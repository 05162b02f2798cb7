package service

import (
	"context"
	"time"

	"library-backend/internal/domains/loan/model"
)

// ServiceInterface is the loan ledger business logic contract.
type ServiceInterface interface {
	// Borrow validates the member, stamps the due date from the configured
	// loan period, and records the loan atomically with the availability
	// decrement.
	Borrow(ctx context.Context, req model.BorrowRequest) (*model.LoanResponse, error)

	// Return closes an open loan. A second return of the same loan fails
	// with ErrLoanAlreadyReturned and changes nothing.
	Return(ctx context.Context, loanID int64, req model.ReturnRequest) (*model.LoanResponse, error)

	GetLoan(ctx context.Context, id int64) (*model.LoanResponse, error)

	ListForMember(ctx context.Context, memberID int64, req model.ListLoansRequest) (*model.ListLoansResponse, error)

	// ListOverdue reports open loans due strictly before the reference date.
	ListOverdue(ctx context.Context, req model.ListOverdueRequest) (*model.ListOverdueResponse, error)

	// MarkOverdue persists the overdue status on open loans due before asOf.
	// Invoked by the background sweep.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}
