package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/config"
	catalogModel "library-backend/internal/domains/catalog/model"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"
	loanModel "library-backend/internal/domains/loan/model"
	loanRepo "library-backend/internal/domains/loan/repository"
	"library-backend/internal/domains/loan/service"
	membershipModel "library-backend/internal/domains/membership/model"
	membershipRepo "library-backend/internal/domains/membership/repository"
	membershipService "library-backend/internal/domains/membership/service"
)

const testISBN = "9780131103627"

type fixture struct {
	books   catalogService.ServiceInterface
	loans   *loanRepo.MemoryRepository
	loanSvc service.ServiceInterface
	members membershipService.ServiceInterface
}

func newFixture() *fixture {
	bookStore := catalogRepo.NewMemoryRepository()
	memberStore := membershipRepo.NewMemoryRepository()
	ledger := loanRepo.NewMemoryRepository(bookStore, memberStore)

	books := catalogService.NewService(bookStore, nil)
	members := membershipService.NewService(memberStore)
	loans := service.NewService(ledger, books, members, nil, config.LoanConfig{PeriodDays: 14})

	return &fixture{
		books:   books,
		loans:   ledger,
		loanSvc: loans,
		members: members,
	}
}

func (f *fixture) addBook(t *testing.T, isbn string, copies int) {
	t.Helper()
	_, err := f.books.CreateBook(context.Background(), catalogModel.CreateBookRequest{
		ID:     isbn,
		Title:  "The C Programming Language",
		Author: "Kernighan & Ritchie",
		Copies: copies,
	})
	require.NoError(t, err)
}

func (f *fixture) addMember(t *testing.T, email string) int64 {
	t.Helper()
	member, err := f.members.Register(context.Background(), membershipModel.RegisterMemberRequest{
		FullName: "Ada Lovelace",
		Email:    email,
	})
	require.NoError(t, err)
	return member.ID
}

func (f *fixture) available(t *testing.T, isbn string) int {
	t.Helper()
	availability, err := f.books.GetAvailability(context.Background(), isbn)
	require.NoError(t, err)
	return availability.Available
}

func timePtr(v time.Time) *time.Time { return &v }

func TestBorrow_DecrementsAvailabilityAndStampsDueDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addBook(t, testISBN, 5)
	memberID := f.addMember(t, "ada@example.com")

	loanDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	loan, err := f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{
		MemberID: memberID,
		BookID:   testISBN,
		LoanDate: timePtr(loanDate),
	})
	require.NoError(t, err)

	assert.Equal(t, loanModel.StatusBorrowed, loan.Status)
	assert.Equal(t, loanDate.AddDate(0, 0, 14), loan.DueDate)
	assert.Nil(t, loan.ReturnedAt)
	assert.Equal(t, 4, f.available(t, testISBN))
}

func TestBorrow_OutOfStockLeavesNoLoan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addBook(t, testISBN, 1)
	memberID := f.addMember(t, "ada@example.com")

	_, err := f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{MemberID: memberID, BookID: testISBN})
	require.NoError(t, err)

	_, err = f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{MemberID: memberID, BookID: testISBN})
	require.ErrorIs(t, err, catalogModel.ErrOutOfStock)

	assert.Equal(t, 0, f.available(t, testISBN))

	history, err := f.loanSvc.ListForMember(ctx, memberID, loanModel.ListLoansRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, history.TotalItems)
}

func TestBorrow_UnknownMember(t *testing.T) {
	f := newFixture()
	f.addBook(t, testISBN, 1)

	_, err := f.loanSvc.Borrow(context.Background(), loanModel.BorrowRequest{MemberID: 42, BookID: testISBN})
	require.ErrorIs(t, err, membershipModel.ErrMemberNotFound)

	assert.Equal(t, 1, f.available(t, testISBN))
}

func TestBorrow_UnknownBook(t *testing.T) {
	f := newFixture()
	memberID := f.addMember(t, "ada@example.com")

	_, err := f.loanSvc.Borrow(context.Background(), loanModel.BorrowRequest{MemberID: memberID, BookID: "9999999999"})
	require.ErrorIs(t, err, catalogModel.ErrBookNotFound)
}

func TestReturn_RestoresAvailabilityOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addBook(t, testISBN, 3)
	memberID := f.addMember(t, "ada@example.com")

	loan, err := f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{MemberID: memberID, BookID: testISBN})
	require.NoError(t, err)
	require.Equal(t, 2, f.available(t, testISBN))

	returned, err := f.loanSvc.Return(ctx, loan.ID, loanModel.ReturnRequest{})
	require.NoError(t, err)
	assert.Equal(t, loanModel.StatusReturned, returned.Status)
	assert.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, 3, f.available(t, testISBN))

	// A second return is rejected and must not increment again.
	_, err = f.loanSvc.Return(ctx, loan.ID, loanModel.ReturnRequest{})
	require.ErrorIs(t, err, loanModel.ErrLoanAlreadyReturned)
	assert.Equal(t, 3, f.available(t, testISBN))
}

func TestReturn_UnknownLoan(t *testing.T) {
	f := newFixture()

	_, err := f.loanSvc.Return(context.Background(), 999, loanModel.ReturnRequest{})
	require.ErrorIs(t, err, loanModel.ErrLoanNotFound)
}

func TestListOverdue_StrictCutoffAndOrdering(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addBook(t, testISBN, 5)
	memberID := f.addMember(t, "ada@example.com")

	borrowOn := func(day time.Time) *loanModel.LoanResponse {
		loan, err := f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{
			MemberID: memberID,
			BookID:   testISBN,
			LoanDate: timePtr(day),
		})
		require.NoError(t, err)
		return loan
	}

	// Due 2024-12-15: overdue as of 2025-01-01.
	overdueLoan := borrowOn(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	// Due 2025-01-08: still open but not yet due.
	borrowOn(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	// Due 2024-12-19 but returned: never overdue.
	returnedLoan := borrowOn(time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC))
	_, err := f.loanSvc.Return(ctx, returnedLoan.ID, loanModel.ReturnRequest{
		ReturnDate: timePtr(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	result, err := f.loanSvc.ListOverdue(ctx, loanModel.ListOverdueRequest{
		AsOf:  timePtr(asOf),
		Page:  1,
		Limit: 20,
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.TotalItems)
	assert.Equal(t, overdueLoan.ID, result.Items[0].LoanID)
	assert.Equal(t, "Ada Lovelace", result.Items[0].MemberName)
	assert.Equal(t, 17, result.Items[0].DaysOverdue)
	assert.Equal(t, asOf, result.AsOf)

	// A cutoff on the due date itself excludes the loan.
	atDue, err := f.loanSvc.ListOverdue(ctx, loanModel.ListOverdueRequest{
		AsOf:  timePtr(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)),
		Page:  1,
		Limit: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, atDue.Items)
}

func TestMarkOverdue_PersistsStatusOnceAndKeepsLoanReturnable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addBook(t, testISBN, 2)
	memberID := f.addMember(t, "ada@example.com")

	loan, err := f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{
		MemberID: memberID,
		BookID:   testISBN,
		LoanDate: timePtr(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	changed, err := f.loanSvc.MarkOverdue(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	marked, err := f.loanSvc.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, loanModel.StatusOverdue, marked.Status)

	// Sweep is idempotent.
	changed, err = f.loanSvc.MarkOverdue(ctx, asOf)
	require.NoError(t, err)
	assert.Zero(t, changed)

	// An overdue loan still returns normally.
	returned, err := f.loanSvc.Return(ctx, loan.ID, loanModel.ReturnRequest{})
	require.NoError(t, err)
	assert.Equal(t, loanModel.StatusReturned, returned.Status)
	assert.Equal(t, 2, f.available(t, testISBN))
}

func TestConcurrentBorrows_ExactlyAvailableCopiesSucceed(t *testing.T) {
	const copies = 5
	const attempts = 20

	f := newFixture()
	ctx := context.Background()
	f.addBook(t, testISBN, copies)
	memberID := f.addMember(t, "ada@example.com")

	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{MemberID: memberID, BookID: testISBN})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, outOfStock int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, catalogModel.ErrOutOfStock)
			outOfStock++
		}
	}

	assert.Equal(t, copies, succeeded)
	assert.Equal(t, attempts-copies, outOfStock)
	assert.Equal(t, 0, f.available(t, testISBN))
	assert.Equal(t, copies, f.loans.OpenLoanCount())
}

func TestAvailabilityConservation(t *testing.T) {
	const copies = 4

	f := newFixture()
	ctx := context.Background()
	f.addBook(t, testISBN, copies)
	memberID := f.addMember(t, "ada@example.com")

	// Borrow three, return one, borrow one more.
	var loanIDs []int64
	for i := 0; i < 3; i++ {
		loan, err := f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{MemberID: memberID, BookID: testISBN})
		require.NoError(t, err)
		loanIDs = append(loanIDs, loan.ID)
	}
	_, err := f.loanSvc.Return(ctx, loanIDs[0], loanModel.ReturnRequest{})
	require.NoError(t, err)
	_, err = f.loanSvc.Borrow(ctx, loanModel.BorrowRequest{MemberID: memberID, BookID: testISBN})
	require.NoError(t, err)

	// Open loans plus available copies always equal the initial stock.
	assert.Equal(t, copies, f.available(t, testISBN)+f.loans.OpenLoanCount())
}
