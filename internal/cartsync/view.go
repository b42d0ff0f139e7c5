package cartsync

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

type cartLoader interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
}

// Line is the cached snapshot of one cart line.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// View is an in-memory read model of user carts, rebuilt from cart.changed
// events. It serves dashboards without touching the primary tables.
type View struct {
	mu     sync.RWMutex
	carts  map[uuid.UUID][]Line
	loader cartLoader
}

// NewView returns an empty view. A nil loader disables load-on-miss, leaving
// the view populated purely by events.
func NewView(loader cartLoader) *View {
	return &View{carts: make(map[uuid.UUID][]Line), loader: loader}
}

// Get returns the lines for a user. On a cache miss it falls back to the
// loader, so the first access after a restart sees the stored cart instead
// of an empty view.
func (v *View) Get(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	v.mu.RLock()
	lines, ok := v.carts[userID]
	v.mu.RUnlock()
	if ok {
		out := make([]Line, len(lines))
		copy(out, lines)
		return out, nil
	}
	if v.loader == nil {
		return nil, nil
	}
	stored, err := v.loader.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	loaded := toLines(stored)
	v.Replace(userID, loaded)
	return loaded, nil
}

// Replace swaps the cached lines for a user. An empty slice clears the entry.
func (v *View) Replace(userID uuid.UUID, lines []Line) {
	if userID == uuid.Nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(lines) == 0 {
		delete(v.carts, userID)
		return
	}
	stored := make([]Line, len(lines))
	copy(stored, lines)
	v.carts[userID] = stored
}

// Size reports how many user carts are cached.
func (v *View) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.carts)
}

func toLines(lines []models.CartLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, Line{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return out
}
