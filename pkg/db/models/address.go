package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user's saved delivery address. Orders copy the fields at
// checkout, so deleting an address never affects placed orders.
type Address struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Phone     string    `gorm:"column:phone;not null"`
	Pincode   string    `gorm:"column:pincode;not null"`
	State     string    `gorm:"column:state;not null"`
	City      string    `gorm:"column:city;not null"`
	Landmark  *string   `gorm:"column:landmark"`
	Address   string    `gorm:"column:address;not null"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
