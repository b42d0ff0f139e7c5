package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/pkg/enums"
	"github.com/trovekart/storefront-backend/pkg/types"
)

// Order is the immutable checkout snapshot plus a mutable status column.
// Items, total and delivery address are frozen at creation.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	Items           types.OrderItems      `gorm:"column:items;type:jsonb;not null"`
	TotalAmount     decimal.Decimal       `gorm:"column:total_amount;type:numeric(12,2);not null"`
	DeliveryAddress types.DeliveryAddress `gorm:"column:delivery_address;type:jsonb;not null"`
	Status          enums.OrderStatus     `gorm:"column:status;type:order_status;not null;default:'pending'"`
	OrderDate       time.Time             `gorm:"column:order_date;not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
