package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email          string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	IsActive       bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// PasswordResetCodeModel represents the database model for PasswordResetCode
type PasswordResetCodeModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_reset_codes_user_created,priority:1"`
	Code      string     `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time  `gorm:"not null;index:idx_reset_codes_user_created,priority:2"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (PasswordResetCodeModel) TableName() string {
	return "password_reset_codes"
}
