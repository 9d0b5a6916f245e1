package domain

import "time"

// User represents an application user.
// Users are disabled rather than deleted so that audit references stay valid.
type User struct {
	UserID                 string     `json:"userID" db:"user_id"` // Primary Key (UUID)
	Username               string     `json:"username" db:"username"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	Active                 bool       `json:"active" db:"active"`
	Superadmin             bool       `json:"superadmin" db:"superadmin"`
	RefreshTokenHash       *string    `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
	AuditFields
}
