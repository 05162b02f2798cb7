package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/membership/model"
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
func (r *postgresRepository) Create(ctx context.Context, member *model.Member) error {
	query := `
		INSERT INTO members (full_name, email, joined_at)
		VALUES ($1, $2, NOW())
		RETURNING id, joined_at
	`

	err := r.pool.QueryRow(ctx, query,
		member.FullName,
		member.Email,
	).Scan(&member.ID, &member.JoinedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	query := `
		SELECT id, full_name, email, joined_at
		FROM members
		WHERE id = $1
	`

	var member model.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.FullName,
		&member.Email,
		&member.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewMemberNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get member by id: %w", err)
	}

	return &member, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListMembersRequest) ([]model.Member, int, error) {
	var totalCount int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM members").Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	query := `
		SELECT id, full_name, email, joined_at
		FROM members
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx, query, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]model.Member, 0, filter.Limit)
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.JoinedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, totalCount, nil
}

// Exists implements RepositoryInterface.Exists
func (r *postgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check member existence: %w", err)
	}

	return exists, nil
}
