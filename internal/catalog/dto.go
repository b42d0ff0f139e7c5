package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

// ProductView is the public catalog projection of a product row.
type ProductView struct {
	ID                 uuid.UUID        `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	EffectivePrice     decimal.Decimal  `json:"effective_price"`
	Category           string           `json:"category"`
	ImageURLs          []string         `json:"image_urls"`
	IsActive           bool             `json:"is_active"`
	CreatedAt          time.Time        `json:"created_at"`
}

func toProductView(p models.Product) ProductView {
	return ProductView{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		EffectivePrice:     p.EffectivePrice(),
		Category:           p.Category,
		ImageURLs:          p.ImageURLs,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
	}
}

// CategoryView is the public projection of a category row.
type CategoryView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL *string   `json:"image_url,omitempty"`
}

func toCategoryView(c models.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL}
}
