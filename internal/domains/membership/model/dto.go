package model

import "time"

// ===================================
// REQUEST DTOs
// ===================================

// RegisterMemberRequest is the payload for creating a member record.
type RegisterMemberRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"required,email"`
}

// ListMembersRequest holds query parameters for the paginated listing.
type ListMembersRequest struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// ===================================
// RESPONSE DTOs
// ===================================

// MemberResponse is the outward shape of a member record.
type MemberResponse struct {
	ID       int64     `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

// ListMembersResponse is the paginated member listing.
type ListMembersResponse struct {
	Items      []MemberResponse `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// ToResponse converts a Member model to its response DTO.
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:       m.ID,
		FullName: m.FullName,
		Email:    m.Email,
		JoinedAt: m.JoinedAt,
	}
}

// ToResponseList converts a slice of members.
func ToResponseList(members []Member) []MemberResponse {
	items := make([]MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, members[i].ToResponse())
	}
	return items
}
