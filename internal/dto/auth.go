package dto

import "time"

// --- Auth DTOs ---

// LoginRequest defines credentials for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token. The refresh token travels in
// an http-only cookie, not in the body.
type LoginResponse struct {
	UserID      string    `json:"userID"`
	Username    string    `json:"username"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RefreshResponse carries a re-issued access token.
type RefreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
