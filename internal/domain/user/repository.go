package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	CreatePasswordResetCode(ctx context.Context, code *PasswordResetCode) error
	// GetLatestPasswordResetCode returns the most recently issued code for the user.
	GetLatestPasswordResetCode(ctx context.Context, userID uuid.UUID) (*PasswordResetCode, error)
}
