package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "library-backend/internal/domains/catalog/model"
	catalogRepository "library-backend/internal/domains/catalog/repository"
	"library-backend/internal/domains/loan/model"
	membershipModel "library-backend/internal/domains/membership/model"
	membershipRepository "library-backend/internal/domains/membership/repository"
)

// flakyCatalog wraps the catalog store and fails increments on demand.
type flakyCatalog struct {
	catalogRepository.RepositoryInterface
	failIncrement bool
}

func (f *flakyCatalog) IncrementAvailability(ctx context.Context, id string) error {
	if f.failIncrement {
		return errors.New("catalog unavailable")
	}
	return f.RepositoryInterface.IncrementAvailability(ctx, id)
}

func TestMarkReturned_FailedIncrementReopensLoan(t *testing.T) {
	ctx := context.Background()

	books := catalogRepository.NewMemoryRepository()
	require.NoError(t, books.Create(ctx, &catalogModel.Book{
		ID:              "9780131103627",
		Title:           "The C Programming Language",
		Author:          "Kernighan & Ritchie",
		CopiesTotal:     1,
		CopiesAvailable: 1,
	}))

	members := membershipRepository.NewMemoryRepository()
	member := membershipModel.Member{FullName: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, members.Create(ctx, &member))

	catalog := &flakyCatalog{RepositoryInterface: books}
	repo := NewMemoryRepository(catalog, members)

	loanDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	loan := &model.Loan{
		MemberID: member.ID,
		BookID:   "9780131103627",
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, 14),
		Status:   model.StatusBorrowed,
	}
	require.NoError(t, repo.CreateBorrow(ctx, loan))

	catalog.failIncrement = true
	_, err := repo.MarkReturned(ctx, loan.ID, time.Now())
	require.Error(t, err)

	// The failed return must leave everything as it was: loan open,
	// indexed, and the copy still out.
	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ReturnedAt)
	assert.Equal(t, model.StatusBorrowed, got.Status)
	assert.Equal(t, 1, repo.OpenLoanCount())

	available, err := books.GetAvailability(ctx, loan.BookID)
	require.NoError(t, err)
	assert.Zero(t, available)

	// Retrying once the catalog recovers completes the return.
	catalog.failIncrement = false
	closed, err := repo.MarkReturned(ctx, loan.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturned, closed.Status)
	assert.Zero(t, repo.OpenLoanCount())

	available, err = books.GetAvailability(ctx, loan.BookID)
	require.NoError(t, err)
	assert.Equal(t, 1, available)
}
