package model

import "time"

// Book is a catalog record. The ID is the ISBN and never changes after
// ingestion. CopiesAvailable is mutated only by the loan borrow/return paths
// and never drops below zero.
type Book struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Genre           *string    `json:"genre,omitempty"`
	PublishedYear   *int       `json:"published_year,omitempty"`
	CopiesTotal     int        `json:"copies_total"`
	CopiesAvailable int        `json:"copies_available"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
