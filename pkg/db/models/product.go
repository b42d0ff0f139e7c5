package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog row. Prices are stored in major currency units.
type Product struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title              string           `gorm:"column:title;not null"`
	Description        string           `gorm:"column:description;not null;default:''"`
	Price              decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountPercentage *decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2)"`
	Category           string           `gorm:"column:category;not null;index"`
	ImageURLs          pq.StringArray   `gorm:"column:image_urls;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive           bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice applies the discount percentage, if any.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPercentage == nil || p.DiscountPercentage.IsZero() {
		return p.Price
	}
	factor := decimal.NewFromInt(100).Sub(*p.DiscountPercentage).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}
