package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ===================================
// REQUEST DTOs
// ===================================

// CreateBookRequest is the ingestion payload for a new catalog record.
type CreateBookRequest struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         *string `json:"genre"`
	PublishedYear *int    `json:"published_year"`
	Copies        int     `json:"copies"`
}

// Validate checks the ingestion payload.
func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validation.Length(10, 13), is.Digit),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Copies, validation.Min(0)),
	)
}

// ListBooksRequest holds query parameters for the paginated catalog listing.
type ListBooksRequest struct {
	Search string `form:"search"`
	Genre  string `form:"genre"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// ===================================
// RESPONSE DTOs
// ===================================

// BookResponse is the outward shape of a catalog record.
type BookResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           *string   `json:"genre,omitempty"`
	PublishedYear   *int      `json:"published_year,omitempty"`
	CopiesTotal     int       `json:"copies_total"`
	CopiesAvailable int       `json:"copies_available"`
	CreatedAt       time.Time `json:"created_at"`
}

// AvailabilityResponse reports the current availability of one title.
type AvailabilityResponse struct {
	BookID    string `json:"book_id"`
	Available int    `json:"available"`
}

// ListBooksResponse is the paginated catalog listing.
type ListBooksResponse struct {
	Items      []BookResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// ===================================
// MAPPERS (Model <-> DTO)
// ===================================

// ToResponse converts a Book model to its response DTO.
func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		PublishedYear:   b.PublishedYear,
		CopiesTotal:     b.CopiesTotal,
		CopiesAvailable: b.CopiesAvailable,
		CreatedAt:       b.CreatedAt,
	}
}

// ToResponseList converts a slice of books.
func ToResponseList(books []Book) []BookResponse {
	items := make([]BookResponse, 0, len(books))
	for i := range books {
		items = append(items, books[i].ToResponse())
	}
	return items
}
