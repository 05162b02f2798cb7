package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverdueIndex_RangeBefore_IsStrict(t *testing.T) {
	idx := NewOverdueIndex()

	idx.Insert(date(2025, 1, 1), 1)
	idx.Insert(date(2025, 1, 2), 2)

	// Cutoff equal to a due date must not include it.
	assert.Empty(t, idx.RangeBefore(date(2025, 1, 1)))
	assert.Equal(t, []int64{1}, idx.RangeBefore(date(2025, 1, 2)))
	assert.Equal(t, []int64{1, 2}, idx.RangeBefore(date(2025, 1, 3)))
}

func TestOverdueIndex_RangeBefore_Ordering(t *testing.T) {
	idx := NewOverdueIndex()

	// Same due date, distinct loans; plus an earlier one inserted last.
	idx.Insert(date(2025, 3, 10), 7)
	idx.Insert(date(2025, 3, 10), 3)
	idx.Insert(date(2025, 2, 1), 9)

	got := idx.RangeBefore(date(2025, 4, 1))
	assert.Equal(t, []int64{9, 3, 7}, got)
}

func TestOverdueIndex_Remove(t *testing.T) {
	idx := NewOverdueIndex()

	idx.Insert(date(2025, 1, 1), 1)
	idx.Insert(date(2025, 1, 1), 2)
	assert.Equal(t, 2, idx.Len())

	idx.Remove(date(2025, 1, 1), 1)

	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, []int64{2}, idx.RangeBefore(date(2025, 2, 1)))

	// Removing an absent entry is a no-op.
	idx.Remove(date(2025, 1, 1), 1)
	assert.Equal(t, 1, idx.Len())
}

func TestOverdueIndex_Empty(t *testing.T) {
	idx := NewOverdueIndex()

	assert.Zero(t, idx.Len())
	assert.Empty(t, idx.RangeBefore(date(2030, 1, 1)))
}
