package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

// LineView is the stored snapshot of a cart line returned to clients.
type LineView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	ImageURLs []string        `json:"image_urls"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartView is the whole cart with a running total.
type CartView struct {
	Lines []LineView      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func toCartView(lines []models.CartLine) CartView {
	view := CartView{Lines: make([]LineView, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Lines = append(view.Lines, LineView{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
			ImageURLs: line.ImageURLs,
			AddedAt:   line.CreatedAt,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view
}
