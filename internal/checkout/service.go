package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/internal/cart"
	"github.com/trovekart/storefront-backend/internal/orders"
	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/enums"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/outbox"
	"github.com/trovekart/storefront-backend/pkg/outbox/payloads"
	"github.com/trovekart/storefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type addressResolver interface {
	ResolveForCheckout(ctx context.Context, userID uuid.UUID, chosen *uuid.UUID) (*models.Address, error)
}

// Input captures the optional checkout parameters.
type Input struct {
	AddressID *uuid.UUID
}

// Service converts a cart into an immutable order snapshot.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error)
}

type service struct {
	tx        txRunner
	cartRepo  cart.Repository
	orderRepo orders.Repository
	addresses addressResolver
	outbox    outboxPublisher
	now       func() time.Time
}

// NewService builds a checkout service with the required dependencies.
func NewService(
	tx txRunner,
	cartRepo cart.Repository,
	orderRepo orders.Repository,
	addressSvc addressResolver,
	outboxSvc outboxPublisher,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if addressSvc == nil {
		return nil, fmt.Errorf("address resolver required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		tx:        tx,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		addresses: addressSvc,
		outbox:    outboxSvc,
		now:       time.Now,
	}, nil
}

// Execute snapshots the cart into an order, clears the cart, and queues the
// domain events. Everything happens in one transaction: on any failure
// nothing persists.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	address, err := s.addresses.ResolveForCheckout(ctx, userID, input.AddressID)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		lines, err := cartRepo.ListForUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		items := make(types.OrderItems, 0, len(lines))
		for _, line := range lines {
			items = append(items, buildOrderItem(line))
		}

		now := s.now().UTC()
		candidate := &models.Order{
			UserID:          userID,
			Items:           items,
			TotalAmount:     items.Total(),
			DeliveryAddress: copyAddress(address),
			Status:          enums.OrderStatusPending,
			OrderDate:       now,
		}
		created, err := s.orderRepo.WithTx(tx).Create(ctx, candidate)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := cartRepo.Clear(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}

		createdEvent := outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   created.ID,
			Actor:         &outbox.ActorRef{UserID: userID, Role: enums.RoleCustomer.String()},
			Data: payloads.OrderCreatedEvent{
				OrderID:     created.ID,
				UserID:      userID,
				TotalAmount: created.TotalAmount,
				ItemCount:   len(items),
				OrderDate:   created.OrderDate,
			},
			Version: 1,
		}
		// order.created happens at most once per order; a replayed checkout
		// must not queue a duplicate.
		if err := s.outbox.EmitIfNotExists(ctx, tx, createdEvent); err != nil {
			return err
		}

		cartEvent := outbox.DomainEvent{
			EventType:     enums.EventCartChanged,
			AggregateType: enums.AggregateCart,
			AggregateID:   userID,
			Data:          payloads.CartChangedEvent{UserID: userID},
			Version:       1,
		}
		if err := s.outbox.Emit(ctx, tx, cartEvent); err != nil {
			return err
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func buildOrderItem(line models.CartLine) types.OrderItem {
	return types.OrderItem{
		ProductID: line.ProductID,
		Title:     line.Title,
		UnitPrice: line.UnitPrice,
		Quantity:  line.Quantity,
		ImageURLs: line.ImageURLs,
	}
}

func copyAddress(address *models.Address) types.DeliveryAddress {
	return types.DeliveryAddress{
		Name:     address.Name,
		Phone:    address.Phone,
		Pincode:  address.Pincode,
		State:    address.State,
		City:     address.City,
		Landmark: address.Landmark,
		Address:  address.Address,
	}
}
