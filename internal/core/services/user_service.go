package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
	"github.com/teambudget/team_budget_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// ListUsers retrieves a paginated list of users. Superadmin only.
func (s *userService) ListUsers(ctx context.Context, actor domain.User, limit, offset int) ([]domain.User, error) {
	if !actor.Superadmin {
		return nil, apperrors.NewForbiddenError("superadmin required")
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// RegisterUser creates a user through self-registration. The first registered
// user never gets superadmin implicitly; that flag is only set through
// CreateUser or directly in the database.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	return s.createUser(ctx, req.Username, req.Password, false, "")
}

// CreateUser creates a user on behalf of a superadmin.
func (s *userService) CreateUser(ctx context.Context, actor domain.User, req dto.CreateUserRequest) (*domain.User, error) {
	if !actor.Superadmin {
		return nil, apperrors.NewForbiddenError("superadmin required")
	}
	return s.createUser(ctx, req.Username, req.Password, req.Superadmin, actor.UserID)
}

func (s *userService) createUser(ctx context.Context, username, password string, superadmin bool, createdBy string) (*domain.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.ErrInternal
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Active:       true,
		Superadmin:   superadmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	if createdBy == "" {
		user.CreatedBy = user.UserID
		user.LastUpdatedBy = user.UserID
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("username is already taken")
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, err
	}

	s.LogInfo(ctx, "User created successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

// ChangePassword changes the acting user's own password after verifying the old one.
func (s *userService) ChangePassword(ctx context.Context, actor domain.User, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.NewValidationFailedError("old password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password")
		return apperrors.ErrInternal
	}
	user.PasswordHash = hash
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user password", slog.String("user_id", actor.UserID))
		return err
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", actor.UserID))
	return nil
}

// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.RefreshTokenHash = &refreshTokenHash
	user.RefreshTokenExpiryTime = &expiresAt
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID
	return s.userRepo.UpdateUser(ctx, *user)
}

// ClearRefreshToken invalidates a user's stored refresh token.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.RefreshTokenHash = nil
	user.RefreshTokenExpiryTime = nil
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID
	return s.userRepo.UpdateUser(ctx, *user)
}

// SetUserActive enables or disables a user. Superadmin only, and a superadmin
// cannot disable itself.
func (s *userService) SetUserActive(ctx context.Context, actor domain.User, targetUserID string, active bool) (*domain.User, error) {
	if !actor.Superadmin {
		return nil, apperrors.NewForbiddenError("superadmin required")
	}
	if !active && actor.UserID == targetUserID {
		return nil, apperrors.NewConflictError("cannot disable your own account")
	}

	user, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if user.Active == active {
		return user, nil
	}

	now := time.Now()
	if err := s.userRepo.SetUserActive(ctx, targetUserID, active, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to set user active state", slog.String("user_id", targetUserID))
		return nil, err
	}
	user.Active = active
	user.LastUpdatedAt = now
	user.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "User active state changed",
		slog.String("user_id", targetUserID),
		slog.Bool("active", active))
	return user, nil
}

// AuthenticateUser verifies a username/password pair.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.Active {
		return nil, apperrors.NewForbiddenError("user is disabled")
	}
	return user, nil
}
