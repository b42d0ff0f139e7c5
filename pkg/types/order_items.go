package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a frozen cart line copied onto an order. Title, unit price and
// images are the add-time snapshot, not the current catalog row.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURLs []string        `json:"image_urls,omitempty"`
}

// LineTotal returns unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItems is the JSONB-stored item list of an order.
type OrderItems []OrderItem

// Total sums the line totals.
func (items OrderItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (items OrderItems) Value() (driver.Value, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order items: empty")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("order items: quantity below 1 for %s", item.ProductID)
		}
	}
	return json.Marshal(items)
}

func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("order items: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, items)
}
