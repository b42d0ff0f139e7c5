package policies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

// Repository is the storage surface for store policies.
type Repository interface {
	Upsert(ctx context.Context, policy *models.Policy) (*models.Policy, error)
	FindBySlug(ctx context.Context, slug string) (*models.Policy, error)
	List(ctx context.Context) ([]models.Policy, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a policy repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert writes the policy keyed by slug, replacing title and content when
// the slug already exists.
func (r *repository) Upsert(ctx context.Context, policy *models.Policy) (*models.Policy, error) {
	if policy.ID == uuid.Nil {
		policy.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "content", "updated_at"}),
		}).
		Create(policy).Error
	if err != nil {
		return nil, err
	}
	return r.FindBySlug(ctx, policy.Slug)
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Policy, error) {
	var policy models.Policy
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) List(ctx context.Context) ([]models.Policy, error) {
	var list []models.Policy
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&list).Error
	return list, err
}
