package orders

import (
	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/pagination"
)

// Page is a cursor-paginated order listing.
type Page struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

func buildPage(rows []models.Order, limit int) Page {
	normalized := pagination.NormalizeLimit(limit)
	page := Page{Orders: rows}
	if len(rows) > normalized {
		page.Orders = rows[:normalized]
		last := page.Orders[len(page.Orders)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page
}
