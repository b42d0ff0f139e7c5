package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/config"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/logger"
	"github.com/trovekart/storefront-backend/pkg/sms"
)

const codeDigits = 6

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Service issues and verifies one-time login codes.
type Service interface {
	Send(ctx context.Context, phone, clientIP string) error
	Verify(ctx context.Context, phone, code string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo    Repository
	sender  sms.Sender
	limiter rateLimiter
	cfg     config.OTPConfig
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds an OTP service with the required dependencies.
func NewService(repo Repository, sender sms.Sender, limiter rateLimiter, cfg config.OTPConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("otp repository required")
	}
	if sender == nil {
		return nil, fmt.Errorf("sms sender required")
	}
	if limiter == nil {
		return nil, fmt.Errorf("rate limiter required")
	}
	if cfg.Expiry <= 0 {
		return nil, fmt.Errorf("otp expiry must be positive")
	}
	return &service{
		repo:    repo,
		sender:  sender,
		limiter: limiter,
		cfg:     cfg,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) Send(ctx context.Context, phone, clientIP string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	if err := s.allow(ctx, "otp:phone:"+normalized, int64(s.cfg.SendPhoneLimit)); err != nil {
		return err
	}
	if ip := strings.TrimSpace(clientIP); ip != "" {
		if err := s.allow(ctx, "otp:ip:"+ip, int64(s.cfg.SendIPLimit)); err != nil {
			return err
		}
	}

	code, err := generateCode()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate code")
	}
	expiresAt := s.now().UTC().Add(s.cfg.Expiry)
	if err := s.repo.Upsert(ctx, normalized, code, expiresAt); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store code")
	}

	body := fmt.Sprintf("Your TroveKart login code is %s. It expires in %d minutes.",
		code, int(s.cfg.Expiry.Minutes()))
	if _, err := s.sender.Send(ctx, normalized, body); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send sms")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "phone", normalized), "otp sent")
	}
	return nil
}

func (s *service) Verify(ctx context.Context, phone, code string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if len(code) != codeDigits {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid code")
	}

	row, err := s.repo.FindByPhone(ctx, normalized)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid code")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load code")
	}

	if s.now().UTC().After(row.ExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "code expired")
	}
	if subtle.ConstantTimeCompare([]byte(row.Code), []byte(code)) != 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid code")
	}

	// One-time use: a verified code is gone.
	if err := s.repo.DeleteByPhone(ctx, normalized); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume code")
	}
	return nil
}

func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().UTC())
}

func (s *service) allow(ctx context.Context, scope string, limit int64) error {
	if limit <= 0 {
		return nil
	}
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, scope, limit, s.cfg.SendWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests, try again later")
	}
	return nil
}

// NormalizePhone strips whitespace and validates the number shape.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !phonePattern.MatchString(cleaned) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number")
	}
	return cleaned, nil
}

func generateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
