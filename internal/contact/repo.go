package contact

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

// Repository is the storage surface for contact messages.
type Repository interface {
	Create(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a contact message repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *repository) List(ctx context.Context) ([]models.ContactMessage, error) {
	var list []models.ContactMessage
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}
