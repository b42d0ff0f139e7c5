package models

import (
	"time"

	"github.com/google/uuid"
)

// OTPCode holds the single active login code per phone number. Sends upsert
// the row; a successful verify deletes it.
type OTPCode struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Phone     string    `gorm:"column:phone;not null;uniqueIndex"`
	Code      string    `gorm:"column:code;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
