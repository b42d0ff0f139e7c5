package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/trovekart/storefront-backend/pkg/enums"
)

// User represents the canonical identity entity. Customers sign in with a
// phone OTP and carry no password hash; admins sign in with email + password.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Phone        *string        `gorm:"column:phone;uniqueIndex"`
	Email        *string        `gorm:"column:email;uniqueIndex"`
	Name         *string        `gorm:"column:name"`
	PasswordHash *string        `gorm:"column:password_hash"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null;default:'customer'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
