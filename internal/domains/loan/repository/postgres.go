package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	catalogModel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/loan/model"
)

// postgresRepository implements RepositoryInterface.
//
// The overdue access path on this engine is the partial index on
// loans(due_date) WHERE returned_at IS NULL (see migrations); ListOverdue
// and MarkOverdue are written to hit it.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// CreateBorrow implements RepositoryInterface.CreateBorrow with a
// transaction. The conditional UPDATE takes the row lock, so two concurrent
// borrows of the last copy cannot both pass the availability check.
func (r *postgresRepository) CreateBorrow(ctx context.Context, loan *model.Loan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	decrementQuery := `
		UPDATE books
		SET copies_available = copies_available - 1,
		    updated_at = NOW()
		WHERE id = $1 AND copies_available > 0
	`

	result, err := tx.Exec(ctx, decrementQuery, loan.BookID)
	if err != nil {
		return fmt.Errorf("failed to decrement availability: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Unknown book or no copies left; look again for the right error.
		var exists bool
		checkQuery := "SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)"
		if checkErr := tx.QueryRow(ctx, checkQuery, loan.BookID).Scan(&exists); checkErr != nil {
			return fmt.Errorf("failed to check book existence: %w", checkErr)
		}

		if !exists {
			return catalogModel.NewBookNotFoundError(loan.BookID)
		}
		return catalogModel.NewOutOfStockError(loan.BookID)
	}

	insertQuery := `
		INSERT INTO loans (member_id, book_id, loan_date, due_date, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, updated_at
	`

	err = tx.QueryRow(ctx, insertQuery,
		loan.MemberID,
		loan.BookID,
		loan.LoanDate,
		loan.DueDate,
		loan.Status,
	).Scan(&loan.ID, &loan.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// MarkReturned implements RepositoryInterface.MarkReturned. The
// returned_at IS NULL predicate is the idempotency guard: the second return
// of the same loan matches no row and the increment never runs.
func (r *postgresRepository) MarkReturned(ctx context.Context, loanID int64, returnedAt time.Time) (*model.Loan, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	closeQuery := `
		UPDATE loans
		SET returned_at = $2,
		    status = $3,
		    updated_at = NOW()
		WHERE id = $1 AND returned_at IS NULL
		RETURNING id, member_id, book_id, loan_date, due_date, returned_at, status, updated_at
	`

	var loan model.Loan
	err = tx.QueryRow(ctx, closeQuery, loanID, returnedAt, model.StatusReturned).Scan(
		&loan.ID,
		&loan.MemberID,
		&loan.BookID,
		&loan.LoanDate,
		&loan.DueDate,
		&loan.ReturnedAt,
		&loan.Status,
		&loan.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unknown loan or already returned.
			var exists bool
			checkQuery := "SELECT EXISTS(SELECT 1 FROM loans WHERE id = $1)"
			if checkErr := tx.QueryRow(ctx, checkQuery, loanID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check loan existence: %w", checkErr)
			}

			if !exists {
				return nil, model.NewLoanNotFoundError(loanID)
			}
			return nil, model.ErrLoanAlreadyReturned
		}
		return nil, fmt.Errorf("failed to close loan: %w", err)
	}

	incrementQuery := `
		UPDATE books
		SET copies_available = copies_available + 1,
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, incrementQuery, loan.BookID); err != nil {
		return nil, fmt.Errorf("failed to increment availability: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &loan, nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Loan, error) {
	query := `
		SELECT id, member_id, book_id, loan_date, due_date, returned_at, status, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan model.Loan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&loan.ID,
		&loan.MemberID,
		&loan.BookID,
		&loan.LoanDate,
		&loan.DueDate,
		&loan.ReturnedAt,
		&loan.Status,
		&loan.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewLoanNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get loan by id: %w", err)
	}

	return &loan, nil
}

// ListByMember implements RepositoryInterface.ListByMember
func (r *postgresRepository) ListByMember(ctx context.Context, memberID int64, filter model.ListLoansRequest) ([]model.LoanView, int, error) {
	var totalCount int
	countQuery := "SELECT COUNT(*) FROM loans WHERE member_id = $1"
	if err := r.pool.QueryRow(ctx, countQuery, memberID).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	query := `
		SELECT
			l.id, l.member_id, l.book_id, l.loan_date, l.due_date,
			l.returned_at, l.status,
			b.title, b.author
		FROM loans l
		JOIN books b ON l.book_id = b.id
		WHERE l.member_id = $1
		ORDER BY l.id ASC
		LIMIT $2 OFFSET $3
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx, query, memberID, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	views := make([]model.LoanView, 0, filter.Limit)
	for rows.Next() {
		var v model.LoanView
		err := rows.Scan(
			&v.ID,
			&v.MemberID,
			&v.BookID,
			&v.LoanDate,
			&v.DueDate,
			&v.ReturnedAt,
			&v.Status,
			&v.BookTitle,
			&v.BookAuthor,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan loan row: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating loan rows: %w", err)
	}

	return views, totalCount, nil
}

// ListOverdue implements RepositoryInterface.ListOverdue
func (r *postgresRepository) ListOverdue(ctx context.Context, asOf time.Time, filter model.ListOverdueRequest) ([]model.OverdueLoanView, int, error) {
	var totalCount int
	countQuery := `
		SELECT COUNT(*)
		FROM loans
		WHERE returned_at IS NULL AND due_date < $1
	`
	if err := r.pool.QueryRow(ctx, countQuery, asOf).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count overdue loans: %w", err)
	}

	query := `
		SELECT
			l.id, l.member_id, m.full_name, m.email,
			l.book_id, b.title, b.author,
			l.loan_date, l.due_date
		FROM loans l
		JOIN books b ON l.book_id = b.id
		JOIN members m ON l.member_id = m.id
		WHERE l.returned_at IS NULL AND l.due_date < $1
		ORDER BY l.due_date ASC, l.id ASC
		LIMIT $2 OFFSET $3
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx, query, asOf, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list overdue loans: %w", err)
	}
	defer rows.Close()

	views := make([]model.OverdueLoanView, 0, filter.Limit)
	for rows.Next() {
		var v model.OverdueLoanView
		err := rows.Scan(
			&v.LoanID,
			&v.MemberID,
			&v.MemberName,
			&v.MemberEmail,
			&v.BookID,
			&v.BookTitle,
			&v.BookAuthor,
			&v.LoanDate,
			&v.DueDate,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan overdue row: %w", err)
		}
		v.DaysOverdue = daysBetween(v.DueDate, asOf)
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating overdue rows: %w", err)
	}

	return views, totalCount, nil
}

// MarkOverdue implements RepositoryInterface.MarkOverdue
func (r *postgresRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE loans
		SET status = $2,
		    updated_at = NOW()
		WHERE returned_at IS NULL
		  AND due_date < $1
		  AND status = $3
	`

	result, err := r.pool.Exec(ctx, query, asOf, model.StatusOverdue, model.StatusBorrowed)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue loans: %w", err)
	}

	return result.RowsAffected(), nil
}

func daysBetween(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
