package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS cart_lines (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  title TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  image_urls TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM cart_lines").Error)
	return db
}

func newLine(userID, productID uuid.UUID, qty int) *models.CartLine {
	return &models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Title:     "Ceramic Mug",
		UnitPrice: decimal.NewFromInt(100),
		Quantity:  qty,
		ImageURLs: []string{"https://cdn.example.com/mug.jpg"},
	}
}

func TestAddOrIncrementCreatesThenIncrements(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddOrIncrement(ctx, newLine(userID, productID, 1)))
	}

	lines, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Ceramic Mug", lines[0].Title)
}

func TestAddOrIncrementKeepsSnapshotOnConflict(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	require.NoError(t, repo.AddOrIncrement(ctx, newLine(userID, productID, 2)))

	// Second add carries a different snapshot, e.g. after an admin price
	// edit. The stored line must keep the original one.
	repriced := newLine(userID, productID, 1)
	repriced.Title = "Ceramic Mug v2"
	repriced.UnitPrice = decimal.NewFromInt(250)
	require.NoError(t, repo.AddOrIncrement(ctx, repriced))

	lines, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Ceramic Mug", lines[0].Title)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(100)))
}

func TestSetQuantityLeavesSnapshotUntouched(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	require.NoError(t, repo.AddOrIncrement(ctx, newLine(userID, productID, 2)))
	require.NoError(t, repo.SetQuantity(ctx, userID, productID, 7))

	lines, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(100)))
}

func TestSetQuantityMissingLineReportsNotFound(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := repo.SetQuantity(ctx, uuid.New(), uuid.New(), 3)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRemoveIsIdempotent(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	require.NoError(t, repo.AddOrIncrement(ctx, newLine(userID, productID, 1)))
	require.NoError(t, repo.Remove(ctx, userID, productID))
	require.NoError(t, repo.Remove(ctx, userID, productID))

	lines, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestClearEmptiesOnlyTargetUser(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userA := uuid.New()
	userB := uuid.New()

	require.NoError(t, repo.AddOrIncrement(ctx, newLine(userA, uuid.New(), 1)))
	require.NoError(t, repo.AddOrIncrement(ctx, newLine(userA, uuid.New(), 2)))
	require.NoError(t, repo.AddOrIncrement(ctx, newLine(userB, uuid.New(), 1)))

	require.NoError(t, repo.Clear(ctx, userA))

	linesA, err := repo.ListForUser(ctx, userA)
	require.NoError(t, err)
	assert.Empty(t, linesA)

	linesB, err := repo.ListForUser(ctx, userB)
	require.NoError(t, err)
	assert.Len(t, linesB, 1)
}
