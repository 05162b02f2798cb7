package repository

import (
	"math"
	"time"

	"github.com/google/btree"
)

// indexEntry keys the overdue index. Ordering is (due date, loan id) so that
// equal due dates stay distinct and range scans come out in a stable order.
type indexEntry struct {
	dueDate time.Time
	loanID  int64
}

func entryLess(a, b indexEntry) bool {
	if !a.dueDate.Equal(b.dueDate) {
		return a.dueDate.Before(b.dueDate)
	}
	return a.loanID < b.loanID
}

// OverdueIndex is an ordered structure over the due dates of open loans,
// supporting range retrieval of "due before X" without a full ledger scan.
// It is a pure access path: it never changes query results, only their cost.
//
// Not safe for concurrent use on its own; the owning repository serializes
// access under its lock, which also keeps the index monotonic with the
// ledger (entries are added and removed in the same critical section as the
// loan mutation).
type OverdueIndex struct {
	tree *btree.BTreeG[indexEntry]
}

// NewOverdueIndex creates an empty index.
func NewOverdueIndex() *OverdueIndex {
	return &OverdueIndex{
		tree: btree.NewG(32, entryLess),
	}
}

// Insert registers an open loan under its due date.
func (idx *OverdueIndex) Insert(dueDate time.Time, loanID int64) {
	idx.tree.ReplaceOrInsert(indexEntry{dueDate: dueDate, loanID: loanID})
}

// Remove drops a loan from the index (on return).
func (idx *OverdueIndex) Remove(dueDate time.Time, loanID int64) {
	idx.tree.Delete(indexEntry{dueDate: dueDate, loanID: loanID})
}

// RangeBefore returns the ids of loans due strictly before cutoff, in
// ascending (due date, loan id) order.
func (idx *OverdueIndex) RangeBefore(cutoff time.Time) []int64 {
	var ids []int64
	pivot := indexEntry{dueDate: cutoff, loanID: math.MinInt64}
	idx.tree.AscendLessThan(pivot, func(e indexEntry) bool {
		ids = append(ids, e.loanID)
		return true
	})
	return ids
}

// Len reports how many open loans are indexed.
func (idx *OverdueIndex) Len() int {
	return idx.tree.Len()
}
