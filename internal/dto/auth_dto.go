package dto

import (
	"time"

	"github.com/educode-platform/educode-api/internal/models"
)

// LoginRequest represents the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the signup payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=1"`
}

// UserResponse represents an account to API consumers. Password material is
// never included.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	TeacherID *int64    `json:"teacherId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse carries the account plus its bearer token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UpdateUserRequest is a shallow patch; absent fields stay unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	FullName  *string `json:"fullName"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin teacher student user"`
	TeacherID *int64  `json:"teacherId"`
}

// NewUserResponse builds a response DTO from a model.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		TeacherID: user.TeacherID,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponseSlice maps a user slice into response DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
