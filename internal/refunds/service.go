package refunds

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/enums"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderLoader interface {
	FindForUser(ctx context.Context, userID, id uuid.UUID) (*models.Order, error)
}

// CreateInput captures a user-raised refund request.
type CreateInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Reason  string
	Amount  decimal.Decimal
}

// DecisionInput captures an admin decision on a pending request.
type DecisionInput struct {
	RequestID  uuid.UUID
	ToStatus   enums.RefundRequestStatus
	AdminNotes *string
}

// Service defines refund request operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.RefundRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.RefundRequest, error)
	List(ctx context.Context) ([]models.RefundRequest, error)
	Decide(ctx context.Context, input DecisionInput) (*models.RefundRequest, error)

	// OpenForOrder creates a pending request for the order total inside the
	// caller's transaction. Used when an order enters refund.
	OpenForOrder(ctx context.Context, tx *gorm.DB, order *models.Order, reason string) error
}

type service struct {
	repo   Repository
	orders orderLoader
	tx     txRunner
}

// NewService builds a refunds service with the required dependencies.
func NewService(repo Repository, orders orderLoader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("refunds repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, orders: orders, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.RefundRequest, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reason required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	order, err := s.orders.FindForUser(ctx, input.UserID, input.OrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if input.Amount.GreaterThan(order.TotalAmount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount exceeds order total")
	}

	request := &models.RefundRequest{
		OrderID: order.ID,
		UserID:  input.UserID,
		Reason:  strings.TrimSpace(input.Reason),
		Amount:  input.Amount,
		Status:  enums.RefundRequestPending,
	}
	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create refund request")
	}
	return created, nil
}

func (s *service) OpenForOrder(ctx context.Context, tx *gorm.DB, order *models.Order, reason string) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "order required")
	}
	request := &models.RefundRequest{
		OrderID: order.ID,
		UserID:  order.UserID,
		Reason:  reason,
		Amount:  order.TotalAmount,
		Status:  enums.RefundRequestPending,
	}
	if _, err := s.repo.WithTx(tx).Create(ctx, request); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open refund request")
	}
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.RefundRequest, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list refund requests")
	}
	return list, nil
}

func (s *service) List(ctx context.Context) ([]models.RefundRequest, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list refund requests")
	}
	return list, nil
}

func (s *service) Decide(ctx context.Context, input DecisionInput) (*models.RefundRequest, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund request id required")
	}
	if !input.ToStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown refund request status")
	}

	var decided *models.RefundRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request, err := repo.FindByID(ctx, input.RequestID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "refund request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load refund request")
		}

		if !request.Status.CanTransitionTo(input.ToStatus) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move refund request from %s to %s", request.Status, input.ToStatus)).
				WithDetails(map[string]string{"from": request.Status.String(), "to": input.ToStatus.String()})
		}

		request.Status = input.ToStatus
		if input.AdminNotes != nil {
			request.AdminNotes = input.AdminNotes
		}
		if err := repo.Update(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update refund request")
		}
		decided = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}
