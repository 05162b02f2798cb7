package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/catalog/model"
)

// postgresRepository implements RepositoryInterface.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, genre, published_year,
			copies_total, copies_available, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.PublishedYear,
		book.CopiesTotal,
		book.CopiesAvailable,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrBookAlreadyExists
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	query := `
		SELECT
			id, title, author, genre, published_year,
			copies_total, copies_available, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book model.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.PublishedYear,
		&book.CopiesTotal,
		&book.CopiesAvailable,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &book, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	queryBuilder := `
		SELECT
			id, title, author, genre, published_year,
			copies_total, copies_available, created_at, updated_at
		FROM books
		WHERE 1=1
	`
	countQuery := "SELECT COUNT(*) FROM books WHERE 1=1"

	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		clause := fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d)", argCount, argCount)
		queryBuilder += clause
		countQuery += clause
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	if filter.Genre != "" {
		clause := fmt.Sprintf(" AND genre = $%d", argCount)
		queryBuilder += clause
		countQuery += clause
		args = append(args, filter.Genre)
		argCount++
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	queryBuilder += " ORDER BY title ASC, id ASC"
	offset := (filter.Page - 1) * filter.Limit
	queryBuilder += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, filter.Limit)
	for rows.Next() {
		var b model.Book
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Genre,
			&b.PublishedYear,
			&b.CopiesTotal,
			&b.CopiesAvailable,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, totalCount, nil
}

// Exists implements RepositoryInterface.Exists
func (r *postgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}

	return exists, nil
}

// GetAvailability implements RepositoryInterface.GetAvailability
func (r *postgresRepository) GetAvailability(ctx context.Context, id string) (int, error) {
	query := "SELECT copies_available FROM books WHERE id = $1"

	var available int
	err := r.pool.QueryRow(ctx, query, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.NewBookNotFoundError(id)
		}
		return 0, fmt.Errorf("failed to get availability: %w", err)
	}

	return available, nil
}

// DecrementAvailability implements RepositoryInterface.DecrementAvailability.
// The availability check and the decrement are one statement; the row lock
// taken by UPDATE serializes concurrent borrows of the same book.
func (r *postgresRepository) DecrementAvailability(ctx context.Context, id string) error {
	query := `
		UPDATE books
		SET copies_available = copies_available - 1,
		    updated_at = NOW()
		WHERE id = $1 AND copies_available > 0
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to decrement availability: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either the book is unknown or it has no copies left; look again
		// to report the right error.
		exists, checkErr := r.Exists(ctx, id)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return model.NewBookNotFoundError(id)
		}
		return model.NewOutOfStockError(id)
	}

	return nil
}

// IncrementAvailability implements RepositoryInterface.IncrementAvailability.
// No upper bound check: every return corresponds to a prior decrement.
func (r *postgresRepository) IncrementAvailability(ctx context.Context, id string) error {
	query := `
		UPDATE books
		SET copies_available = copies_available + 1,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment availability: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.NewBookNotFoundError(id)
	}

	return nil
}
