package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/internal/catalog"
	"github.com/trovekart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/outbox"
)

type stubCartRepo struct {
	Repository
	added     []*models.CartLine
	lines     []models.CartLine
	cleared   int
	setQtyErr error
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCartRepo) AddOrIncrement(ctx context.Context, line *models.CartLine) error {
	s.added = append(s.added, line)
	return nil
}

func (s *stubCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	s.cleared++
	return nil
}

func (s *stubCartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return s.setQtyErr
}

func (s *stubCartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}

func (s *stubCartRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	return s.lines, nil
}

type stubTxRunner struct{ calls int }

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(&gorm.DB{})
}

type stubOutbox struct{ events []outbox.DomainEvent }

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubProducts struct {
	product *catalog.ProductView
	err     error
}

func (s *stubProducts) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.ProductView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func activeProduct() *catalog.ProductView {
	return &catalog.ProductView{
		ID:             uuid.New(),
		Title:          "Ceramic Mug",
		Price:          decimal.NewFromInt(100),
		EffectivePrice: decimal.NewFromInt(100),
		ImageURLs:      []string{"https://cdn.example.com/mug.jpg"},
		IsActive:       true,
	}
}

func newTestService(t *testing.T, repo Repository, products productLoader) (Service, *stubOutbox) {
	t.Helper()
	ob := &stubOutbox{}
	svc, err := NewService(repo, &stubTxRunner{}, ob, products)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, ob
}

func TestAddOrIncrementSnapshotsEffectivePrice(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	discount := decimal.NewFromInt(20)
	product := activeProduct()
	product.DiscountPercentage = &discount
	product.EffectivePrice = decimal.NewFromInt(80)
	svc, ob := newTestService(t, repo, &stubProducts{product: product})

	userID := uuid.New()
	if err := svc.AddOrIncrement(context.Background(), userID, product.ID, 2); err != nil {
		t.Fatalf("AddOrIncrement: %v", err)
	}

	if len(repo.added) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(repo.added))
	}
	line := repo.added[0]
	if !line.UnitPrice.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected snapshot price 80, got %s", line.UnitPrice)
	}
	if line.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", line.Quantity)
	}
	if len(ob.events) != 1 {
		t.Fatalf("expected 1 cart.changed event, got %d", len(ob.events))
	}
}

func TestAddOrIncrementRejectsInvalidQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubCartRepo{}, &stubProducts{product: activeProduct()})

	err := svc.AddOrIncrement(context.Background(), uuid.New(), uuid.New(), 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddOrIncrementRejectsInactiveProduct(t *testing.T) {
	t.Parallel()

	product := activeProduct()
	product.IsActive = false
	svc, ob := newTestService(t, &stubCartRepo{}, &stubProducts{product: product})

	err := svc.AddOrIncrement(context.Background(), uuid.New(), product.ID, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(ob.events) != 0 {
		t.Fatalf("expected no events, got %d", len(ob.events))
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc, ob := newTestService(t, repo, &stubProducts{product: activeProduct()})

	if err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), 0); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if len(ob.events) != 1 {
		t.Fatalf("expected cart.changed after removal, got %d events", len(ob.events))
	}
}

func TestSetQuantityMissingLineNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{setQtyErr: gorm.ErrRecordNotFound}
	svc, ob := newTestService(t, repo, &stubProducts{product: activeProduct()})

	err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), 3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(ob.events) != 0 {
		t.Fatalf("no cart.changed event may fire for a missing line, got %d", len(ob.events))
	}
}

func TestGetSumsStoredSnapshots(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{lines: []models.CartLine{
		{ProductID: uuid.New(), Title: "A", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		{ProductID: uuid.New(), Title: "B", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
	}}
	svc, _ := newTestService(t, repo, &stubProducts{product: activeProduct()})

	view, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !view.Total.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected total 250, got %s", view.Total)
	}
	if len(view.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Lines))
	}
}
