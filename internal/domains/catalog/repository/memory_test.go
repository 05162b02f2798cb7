package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/catalog/model"
)

func seedBook(t *testing.T, repo *MemoryRepository, id string, copies int) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Book{
		ID:              id,
		Title:           "Structure and Interpretation of Computer Programs",
		Author:          "Abelson & Sussman",
		CopiesTotal:     copies,
		CopiesAvailable: copies,
	})
	require.NoError(t, err)
}

func TestMemoryRepository_DecrementAvailability(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seedBook(t, repo, "9780262510875", 2)

	require.NoError(t, repo.DecrementAvailability(ctx, "9780262510875"))
	require.NoError(t, repo.DecrementAvailability(ctx, "9780262510875"))

	err := repo.DecrementAvailability(ctx, "9780262510875")
	require.ErrorIs(t, err, model.ErrOutOfStock)

	available, err := repo.GetAvailability(ctx, "9780262510875")
	require.NoError(t, err)
	assert.Zero(t, available)
}

func TestMemoryRepository_DecrementUnknownBook(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.DecrementAvailability(context.Background(), "9999999999")
	require.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestMemoryRepository_ConcurrentDecrements(t *testing.T) {
	const copies = 7
	const attempts = 50

	repo := NewMemoryRepository()
	ctx := context.Background()
	seedBook(t, repo, "9780262510875", copies)

	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.DecrementAvailability(ctx, "9780262510875")
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, model.ErrOutOfStock)
		}
	}

	// Exactly as many decrements as there were copies; never negative.
	assert.Equal(t, copies, succeeded)

	available, err := repo.GetAvailability(ctx, "9780262510875")
	require.NoError(t, err)
	assert.Zero(t, available)
}

func TestMemoryRepository_IncrementRestoresAvailability(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seedBook(t, repo, "9780262510875", 1)

	require.NoError(t, repo.DecrementAvailability(ctx, "9780262510875"))
	require.NoError(t, repo.IncrementAvailability(ctx, "9780262510875"))

	available, err := repo.GetAvailability(ctx, "9780262510875")
	require.NoError(t, err)
	assert.Equal(t, 1, available)
}

func TestMemoryRepository_CreateDuplicate(t *testing.T) {
	repo := NewMemoryRepository()
	seedBook(t, repo, "9780262510875", 1)

	err := repo.Create(context.Background(), &model.Book{
		ID:     "9780262510875",
		Title:  "Duplicate",
		Author: "Someone",
	})
	require.ErrorIs(t, err, model.ErrBookAlreadyExists)
}
