package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/repository"
	"library-backend/internal/domains/catalog/service"
)

func newService() service.ServiceInterface {
	return service.NewService(repository.NewMemoryRepository(), nil)
}

func TestCreateBook_SetsAvailableToTotal(t *testing.T) {
	svc := newService()

	book, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		ID:     "9780131103627",
		Title:  "The C Programming Language",
		Author: "Kernighan & Ritchie",
		Copies: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, book.CopiesTotal)
	assert.Equal(t, 5, book.CopiesAvailable)
}

func TestCreateBook_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.CreateBookRequest
	}{
		{
			name: "missing_isbn",
			req:  model.CreateBookRequest{Title: "T", Author: "A", Copies: 1},
		},
		{
			name: "isbn_too_short",
			req:  model.CreateBookRequest{ID: "12345", Title: "T", Author: "A", Copies: 1},
		},
		{
			name: "isbn_not_digits",
			req:  model.CreateBookRequest{ID: "97801311036XY", Title: "T", Author: "A", Copies: 1},
		},
		{
			name: "missing_title",
			req:  model.CreateBookRequest{ID: "9780131103627", Author: "A", Copies: 1},
		},
		{
			name: "negative_copies",
			req:  model.CreateBookRequest{ID: "9780131103627", Title: "T", Author: "A", Copies: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBook(ctx, tt.req)
			require.ErrorIs(t, err, model.ErrInvalidPayload)
		})
	}
}

func TestGetAvailability_WithoutCache(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, model.CreateBookRequest{
		ID:     "9780131103627",
		Title:  "The C Programming Language",
		Author: "Kernighan & Ritchie",
		Copies: 2,
	})
	require.NoError(t, err)

	availability, err := svc.GetAvailability(ctx, "9780131103627")
	require.NoError(t, err)
	assert.Equal(t, "9780131103627", availability.BookID)
	assert.Equal(t, 2, availability.Available)

	_, err = svc.GetAvailability(ctx, "9999999999999")
	require.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	req := model.CreateBookRequest{
		ID:     "9780131103627",
		Title:  "The C Programming Language",
		Author: "Kernighan & Ritchie",
		Copies: 1,
	}

	_, err := svc.CreateBook(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, req)
	require.ErrorIs(t, err, model.ErrBookAlreadyExists)
}
