package otp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trovekart/storefront-backend/pkg/db/models"
)

// Repository is the storage surface for login codes.
type Repository interface {
	Upsert(ctx context.Context, phone, code string, expiresAt time.Time) error
	FindByPhone(ctx context.Context, phone string) (*models.OTPCode, error)
	DeleteByPhone(ctx context.Context, phone string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an OTP repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert replaces any outstanding code for the phone. Only one code is live
// per phone at a time.
func (r *repository) Upsert(ctx context.Context, phone, code string, expiresAt time.Time) error {
	row := &models.OTPCode{
		ID:        uuid.New(),
		Phone:     phone,
		Code:      code,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
		}).
		Create(row).Error
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*models.OTPCode, error) {
	var row models.OTPCode
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) DeleteByPhone(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Where("phone = ?", phone).Delete(&models.OTPCode{}).Error
}

func (r *repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.OTPCode{})
	return result.RowsAffected, result.Error
}
