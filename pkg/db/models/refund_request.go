package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/pkg/enums"
)

// RefundRequest is a user-raised refund against one of their orders.
type RefundRequest struct {
	ID         uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID                 `gorm:"column:order_id;type:uuid;not null;index"`
	UserID     uuid.UUID                 `gorm:"column:user_id;type:uuid;not null;index"`
	Reason     string                    `gorm:"column:reason;not null"`
	Amount     decimal.Decimal           `gorm:"column:amount;type:numeric(12,2);not null"`
	Status     enums.RefundRequestStatus `gorm:"column:status;type:refund_request_status;not null;default:'pending'"`
	AdminNotes *string                   `gorm:"column:admin_notes"`
	CreatedAt  time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
