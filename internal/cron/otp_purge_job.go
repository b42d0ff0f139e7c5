package cron

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type otpPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type OTPPurgeJobParams struct {
	Logger *logger.Logger
	OTP    otpPurger
}

// NewOTPPurgeJob builds the job that removes expired login codes.
func NewOTPPurgeJob(params OTPPurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.OTP == nil {
		return nil, fmt.Errorf("otp service required")
	}
	return &otpPurgeJob{logg: params.Logger, otp: params.OTP}, nil
}

type otpPurgeJob struct {
	logg *logger.Logger
	otp  otpPurger
}

func (j *otpPurgeJob) Name() string { return "otp-purge" }

func (j *otpPurgeJob) Run(ctx context.Context) error {
	deleted, err := j.otp.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("otp purge: %w", err)
	}
	j.logg.Info(j.logg.WithField(ctx, "rows_deleted", deleted), "expired login codes purged")
	return nil
}
