package services

import (
	"context"
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT access token for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken issues an opaque refresh token, persisting its hash
	// and expiry on the user record.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken validates a refresh token string against a user's
	// stored token details. It returns the user if the token is valid and not
	// expired.
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}
