package refunds

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

// Repository is the storage surface for refund requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, request *models.RefundRequest) (*models.RefundRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.RefundRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.RefundRequest, error)
	List(ctx context.Context) ([]models.RefundRequest, error)
	Update(ctx context.Context, request *models.RefundRequest) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a refund request repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.RefundRequest) (*models.RefundRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RefundRequest, error) {
	var request models.RefundRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.RefundRequest, error) {
	var list []models.RefundRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) List(ctx context.Context) ([]models.RefundRequest, error) {
	var list []models.RefundRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, request *models.RefundRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}
