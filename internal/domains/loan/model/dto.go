package model

import "time"

// ===================================
// REQUEST DTOs
// ===================================

// BorrowRequest is the payload for creating a loan. LoanDate is optional and
// defaults to server time; callers that own "today" pass it explicitly.
type BorrowRequest struct {
	MemberID int64      `json:"member_id" binding:"required"`
	BookID   string     `json:"book_id" binding:"required"`
	LoanDate *time.Time `json:"loan_date"`
}

// ReturnRequest is the payload for closing a loan.
type ReturnRequest struct {
	ReturnDate *time.Time `json:"return_date"`
}

// ListLoansRequest holds pagination for a member's loan history.
type ListLoansRequest struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// ListOverdueRequest holds query parameters for the overdue listing. AsOf
// defaults to server time; the overdue predicate is evaluated against it.
type ListOverdueRequest struct {
	AsOf  *time.Time `form:"as_of" time_format:"2006-01-02"`
	Page  int        `form:"page,default=1" binding:"min=1"`
	Limit int        `form:"limit,default=20" binding:"min=1,max=100"`
}

// ===================================
// RESPONSE DTOs
// ===================================

// LoanResponse is the outward shape of a ledger record.
type LoanResponse struct {
	ID         int64      `json:"id"`
	MemberID   int64      `json:"member_id"`
	BookID     string     `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     Status     `json:"status"`
}

// LoanView is a loan joined with book display fields, for a member's history.
type LoanView struct {
	LoanResponse
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}

// OverdueLoanView is an overdue loan joined with member and book display
// fields.
type OverdueLoanView struct {
	LoanID      int64     `json:"loan_id"`
	MemberID    int64     `json:"member_id"`
	MemberName  string    `json:"member_name"`
	MemberEmail string    `json:"member_email"`
	BookID      string    `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	BookAuthor  string    `json:"book_author"`
	LoanDate    time.Time `json:"loan_date"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
}

// ListLoansResponse is a member's paginated loan history.
type ListLoansResponse struct {
	Items      []LoanView `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// ListOverdueResponse is the paginated overdue listing.
type ListOverdueResponse struct {
	AsOf       time.Time         `json:"as_of"`
	Items      []OverdueLoanView `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// ToResponse converts a Loan model to its response DTO.
func (l *Loan) ToResponse() LoanResponse {
	return LoanResponse{
		ID:         l.ID,
		MemberID:   l.MemberID,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnedAt: l.ReturnedAt,
		Status:     l.Status,
	}
}
