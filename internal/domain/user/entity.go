package user

import (
	"time"

	"github.com/google/uuid"
)

// ResetCodeTTL is how long a password reset code may be consumed after it is issued.
const ResetCodeTTL = time.Hour

// User represents a teacher account
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHashed string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PasswordResetCode is an opaque code authorizing one password change.
// Codes are never deleted; stale ones are rejected by age.
type PasswordResetCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	CreatedAt time.Time
}

// Expired reports whether the code is older than ResetCodeTTL at now.
func (c *PasswordResetCode) Expired(now time.Time) bool {
	return now.Sub(c.CreatedAt) > ResetCodeTTL
}
