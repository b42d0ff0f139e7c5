package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/enums"
)

// Repository is the storage surface for user identities.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindOrCreateByPhone(ctx context.Context, phone string) (*models.User, error)
	CreateAdmin(ctx context.Context, email, passwordHash string) (*models.User, error)
	List(ctx context.Context, role *enums.UserRole) ([]models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdateProfile(ctx context.Context, user *models.User) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a user repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateByPhone returns the existing user for the phone or creates a
// fresh customer row. Concurrent first logins race on the unique phone index;
// the loser retries the lookup.
func (r *repository) FindOrCreateByPhone(ctx context.Context, phone string) (*models.User, error) {
	user, err := r.FindByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := &models.User{
		ID:       uuid.New(),
		Phone:    &phone,
		Role:     enums.RoleCustomer,
		IsActive: true,
	}
	if createErr := r.db.WithContext(ctx).Create(created).Error; createErr != nil {
		if existing, retryErr := r.FindByPhone(ctx, phone); retryErr == nil {
			return existing, nil
		}
		return nil, createErr
	}
	return created, nil
}

func (r *repository) CreateAdmin(ctx context.Context, email, passwordHash string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	created := &models.User{
		ID:           uuid.New(),
		Email:        &normalized,
		PasswordHash: &passwordHash,
		Role:         enums.RoleAdmin,
		IsActive:     true,
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) List(ctx context.Context, role *enums.UserRole) ([]models.User, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	var list []models.User
	err := query.Find(&list).Error
	return list, err
}

func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
