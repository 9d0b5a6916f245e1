package services

import (
	"context"
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users. Superadmin only.
	ListUsers(ctx context.Context, actor domain.User, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a user through self-registration.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// CreateUser creates a user on behalf of a superadmin.
	CreateUser(ctx context.Context, actor domain.User, req dto.CreateUserRequest) (*domain.User, error)

	// ChangePassword changes the acting user's own password after verifying
	// the old one.
	ChangePassword(ctx context.Context, actor domain.User, req dto.ChangePasswordRequest) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error

	// ClearRefreshToken invalidates a user's stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines operations for enabling and disabling users.
// Users are never deleted; a disabled user cannot authenticate.
type UserLifecycleSvc interface {
	// SetUserActive enables or disables a user. Superadmin only, and a
	// superadmin cannot disable itself.
	SetUserActive(ctx context.Context, actor domain.User, targetUserID string, active bool) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser verifies a username/password pair. Disabled users fail
	// with ErrForbidden, unknown users and bad passwords with ErrUnauthorized.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
