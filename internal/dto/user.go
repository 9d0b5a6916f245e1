package dto

import (
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// --- User DTOs ---

// RegisterUserRequest defines data for self-registration.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateUserRequest defines data for an admin-created user.
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=64"`
	Password   string `json:"password" binding:"required,min=8"`
	Superadmin bool   `json:"superadmin"`
}

// ChangePasswordRequest defines data for changing the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// SetUserActiveRequest defines data for enabling or disabling a user.
type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// UserResponse defines data returned for a user. The password hash never leaves
// the service layer.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	Active     bool      `json:"active"`
	Superadmin bool      `json:"superadmin"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		Active:     u.Active,
		Superadmin: u.Superadmin,
		CreatedAt:  u.CreatedAt,
	}
}

// ListUsersResponse wraps a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to DTO.
func ToListUsersResponse(us []domain.User) ListUsersResponse {
	list := make([]UserResponse, len(us))
	for i := range us {
		list[i] = ToUserResponse(&us[i])
	}
	return ListUsersResponse{Users: list}
}
