package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoan_IsOverdueAt(t *testing.T) {
	due := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	open := Loan{DueDate: due, Status: StatusBorrowed}

	assert.False(t, open.IsOverdueAt(due.AddDate(0, 0, -1)))
	assert.False(t, open.IsOverdueAt(due), "cutoff equal to due date is not overdue")
	assert.True(t, open.IsOverdueAt(due.AddDate(0, 0, 1)))

	returnedAt := due.AddDate(0, 0, 5)
	closed := Loan{DueDate: due, ReturnedAt: &returnedAt, Status: StatusReturned}
	assert.False(t, closed.IsOverdueAt(due.AddDate(0, 0, 10)))
}

func TestLoan_StatusAt(t *testing.T) {
	due := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	// StatusAt reports overdue even before the sweep persisted it.
	open := Loan{DueDate: due, Status: StatusBorrowed}
	assert.Equal(t, StatusBorrowed, open.StatusAt(due))
	assert.Equal(t, StatusOverdue, open.StatusAt(due.AddDate(0, 0, 1)))

	returnedAt := due.AddDate(0, 0, 1)
	closed := Loan{DueDate: due, ReturnedAt: &returnedAt, Status: StatusReturned}
	assert.Equal(t, StatusReturned, closed.StatusAt(due.AddDate(0, 0, 30)))
}
