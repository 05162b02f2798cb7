package model

import "time"

// Status is the lifecycle state of a loan.
//
// borrowed -> returned is the only terminal transition. borrowed -> overdue
// is an observation persisted by the periodic sweep; an overdue loan can
// still be returned. Nothing leaves returned.
type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
)

// Loan is a ledger record. ReturnedAt is nil while the loan is open; DueDate
// is stamped at creation from the configured loan period.
type Loan struct {
	ID         int64      `json:"id"`
	MemberID   int64      `json:"member_id"`
	BookID     string     `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     Status     `json:"status"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsOpen reports whether the book is still out.
func (l *Loan) IsOpen() bool {
	return l.ReturnedAt == nil
}

// IsOverdueAt evaluates the overdue predicate against a reference date.
// Pure; the persisted status does not participate.
func (l *Loan) IsOverdueAt(asOf time.Time) bool {
	return l.ReturnedAt == nil && l.DueDate.Before(asOf)
}

// StatusAt is the status as observed at a reference date, regardless of
// whether the sweep already persisted the overdue transition.
func (l *Loan) StatusAt(asOf time.Time) Status {
	if l.ReturnedAt != nil {
		return StatusReturned
	}
	if l.IsOverdueAt(asOf) {
		return StatusOverdue
	}
	return StatusBorrowed
}
