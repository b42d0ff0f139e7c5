package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/internal/cart"
	"github.com/trovekart/storefront-backend/internal/orders"
	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/enums"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/outbox"
	"github.com/trovekart/storefront-backend/pkg/pagination"
)

type stubTxRunner struct{ rolledBack bool }

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := fn(&gorm.DB{})
	if err != nil {
		s.rolledBack = true
	}
	return err
}

type stubCartRepo struct {
	lines   []models.CartLine
	cleared int
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) cart.Repository { return s }

func (s *stubCartRepo) AddOrIncrement(ctx context.Context, line *models.CartLine) error { return nil }

func (s *stubCartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return nil
}

func (s *stubCartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error { return nil }

func (s *stubCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	s.cleared++
	return nil
}

func (s *stubCartRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	return s.lines, nil
}

type stubOrderRepo struct {
	created   []*models.Order
	createErr error
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = uuid.New()
	s.created = append(s.created, order)
	return order, nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) FindForUser(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return nil
}

type stubAddressResolver struct {
	address *models.Address
	err     error
}

func (s *stubAddressResolver) ResolveForCheckout(ctx context.Context, userID uuid.UUID, chosen *uuid.UUID) (*models.Address, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.address, nil
}

type stubOutbox struct {
	events  []outbox.DomainEvent
	deduped []outbox.DomainEvent
	emitErr error
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if s.emitErr != nil {
		return s.emitErr
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubOutbox) EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if err := s.Emit(ctx, tx, event); err != nil {
		return err
	}
	s.deduped = append(s.deduped, event)
	return nil
}

func testAddress() *models.Address {
	return &models.Address{
		ID:      uuid.New(),
		Name:    "Asha Rao",
		Phone:   "+919800000001",
		Pincode: "560001",
		State:   "Karnataka",
		City:    "Bengaluru",
		Address: "12 MG Road",
	}
}

func testLines() []models.CartLine {
	return []models.CartLine{
		{ProductID: uuid.New(), Title: "Mug", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		{ProductID: uuid.New(), Title: "Plate", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
	}
}

func newCheckout(t *testing.T, tx txRunner, cartRepo cart.Repository, orderRepo orders.Repository, resolver addressResolver, ob outboxPublisher) Service {
	t.Helper()
	svc, err := NewService(tx, cartRepo, orderRepo, resolver, ob)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestExecuteSnapshotsCartIntoOrder(t *testing.T) {
	t.Parallel()

	cartRepo := &stubCartRepo{lines: testLines()}
	orderRepo := &stubOrderRepo{}
	ob := &stubOutbox{}
	svc := newCheckout(t, &stubTxRunner{}, cartRepo, orderRepo, &stubAddressResolver{address: testAddress()}, ob)

	userID := uuid.New()
	order, err := svc.Execute(context.Background(), userID, Input{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !order.TotalAmount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected total 250, got %s", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if order.Items[0].Title != "Mug" || order.Items[1].Title != "Plate" {
		t.Fatalf("items do not match cart snapshots: %+v", order.Items)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.DeliveryAddress.City != "Bengaluru" {
		t.Fatalf("expected copied address, got %+v", order.DeliveryAddress)
	}
	if cartRepo.cleared != 1 {
		t.Fatalf("expected cart cleared once, got %d", cartRepo.cleared)
	}
	if len(ob.events) != 2 {
		t.Fatalf("expected order.created and cart.changed events, got %d", len(ob.events))
	}
	if len(ob.deduped) != 1 || ob.deduped[0].EventType != enums.EventOrderCreated {
		t.Fatalf("order.created must go through the dedupe emit, got %+v", ob.deduped)
	}
}

func TestExecuteEmptyCartRejected(t *testing.T) {
	t.Parallel()

	orderRepo := &stubOrderRepo{}
	svc := newCheckout(t, &stubTxRunner{}, &stubCartRepo{}, orderRepo, &stubAddressResolver{address: testAddress()}, &stubOutbox{})

	_, err := svc.Execute(context.Background(), uuid.New(), Input{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(orderRepo.created) != 0 {
		t.Fatal("no order may persist for an empty cart")
	}
}

func TestExecuteFailureLeavesNothingBehind(t *testing.T) {
	t.Parallel()

	cartRepo := &stubCartRepo{lines: testLines()}
	orderRepo := &stubOrderRepo{createErr: errors.New("insert failed")}
	tx := &stubTxRunner{}
	svc := newCheckout(t, tx, cartRepo, orderRepo, &stubAddressResolver{address: testAddress()}, &stubOutbox{})

	_, err := svc.Execute(context.Background(), uuid.New(), Input{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !tx.rolledBack {
		t.Fatal("expected transaction rollback")
	}
}

func TestExecuteRequiresResolvableAddress(t *testing.T) {
	t.Parallel()

	resolver := &stubAddressResolver{err: pkgerrors.New(pkgerrors.CodeValidation, "no delivery address on file")}
	svc := newCheckout(t, &stubTxRunner{}, &stubCartRepo{lines: testLines()}, &stubOrderRepo{}, resolver, &stubOutbox{})

	_, err := svc.Execute(context.Background(), uuid.New(), Input{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
