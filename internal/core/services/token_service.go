package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/platform/config"
	"github.com/teambudget/team_budget_app/internal/utils"
)

// refreshTokenByteLength is the entropy of an opaque refresh token before hex
// encoding.
const refreshTokenByteLength = 32

// tokenService issues JWT access tokens and opaque refresh tokens. Only the
// SHA256 hash of a refresh token is persisted.
type tokenService struct {
	BaseService
	userSvc portssvc.UserSvcFacade
	cfg     *config.Config
}

// NewTokenService creates a new token service with the provided dependencies
func NewTokenService(userSvc portssvc.UserSvcFacade, cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{userSvc: userSvc, cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken issues a signed JWT access token for the user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.ErrInternal
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken issues an opaque refresh token and persists its hash
// and expiry on the user record. Issuing a new token invalidates the
// previous one.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, err := utils.GenerateSecureRandomString(refreshTokenByteLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.ErrInternal
	}

	expiresAt := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userSvc.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(token), expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token hash", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateRefreshToken validates a refresh token string against a user's
// stored token details.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.Active {
		return nil, apperrors.NewForbiddenError("user is disabled")
	}
	if user.RefreshTokenHash == nil || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CompareRefreshTokenHash(refreshToken, *user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
