package model

import "time"

// Member is a library member identity record. Immutable once created;
// credential and renewal lifecycle live outside this service.
type Member struct {
	ID       int64     `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}
