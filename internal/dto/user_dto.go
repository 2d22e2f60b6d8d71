package dto

import (
	"time"

	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// UpsertUserRequest represents the caller's profile
type UpsertUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=255" example:"ana@example.com"`
	Username  string `json:"username" binding:"omitempty,max=100" example:"ana"`
	FirstName string `json:"first_name" binding:"omitempty,max=100" example:"Ana"`
	LastName  string `json:"last_name" binding:"omitempty,max=100" example:"García"`
}

// UserResponse represents a user profile
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt,
	}
}
