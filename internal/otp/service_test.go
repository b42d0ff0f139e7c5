package otp

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/config"
	"github.com/trovekart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

type stubOTPRepo struct {
	row      *models.OTPCode
	upserts  int
	deletes  int
	lastCode string
}

func (s *stubOTPRepo) Upsert(ctx context.Context, phone, code string, expiresAt time.Time) error {
	s.upserts++
	s.lastCode = code
	s.row = &models.OTPCode{Phone: phone, Code: code, ExpiresAt: expiresAt}
	return nil
}

func (s *stubOTPRepo) FindByPhone(ctx context.Context, phone string) (*models.OTPCode, error) {
	if s.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.row, nil
}

func (s *stubOTPRepo) DeleteByPhone(ctx context.Context, phone string) error {
	s.deletes++
	s.row = nil
	return nil
}

func (s *stubOTPRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type stubSender struct{ sent []string }

func (s *stubSender) Send(ctx context.Context, phone, body string) (string, error) {
	s.sent = append(s.sent, body)
	return "SM123", nil
}

type stubLimiter struct{ allowed bool }

func (s *stubLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	return s.allowed, 1, nil
}

func testConfig() config.OTPConfig {
	return config.OTPConfig{
		Expiry:         5 * time.Minute,
		SendWindow:     time.Minute,
		SendPhoneLimit: 3,
		SendIPLimit:    20,
	}
}

func newOTPService(t *testing.T, repo Repository, sender *stubSender, limiter rateLimiter) Service {
	t.Helper()
	svc, err := NewService(repo, sender, limiter, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSendStoresSixDigitCode(t *testing.T) {
	t.Parallel()

	repo := &stubOTPRepo{}
	sender := &stubSender{}
	svc := newOTPService(t, repo, sender, &stubLimiter{allowed: true})

	if err := svc.Send(context.Background(), "+919876543210", "1.2.3.4"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected 1 upsert, got %d", repo.upserts)
	}
	if len(repo.lastCode) != 6 {
		t.Fatalf("expected 6-digit code, got %q", repo.lastCode)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 sms, got %d", len(sender.sent))
	}
}

func TestSendRejectsWhenRateLimited(t *testing.T) {
	t.Parallel()

	svc := newOTPService(t, &stubOTPRepo{}, &stubSender{}, &stubLimiter{allowed: false})

	err := svc.Send(context.Background(), "+919876543210", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestSendRejectsInvalidPhone(t *testing.T) {
	t.Parallel()

	svc := newOTPService(t, &stubOTPRepo{}, &stubSender{}, &stubLimiter{allowed: true})

	err := svc.Send(context.Background(), "not-a-phone", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVerifyConsumesCode(t *testing.T) {
	t.Parallel()

	repo := &stubOTPRepo{row: &models.OTPCode{
		Phone:     "+919876543210",
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}}
	svc := newOTPService(t, repo, &stubSender{}, &stubLimiter{allowed: true})

	if err := svc.Verify(context.Background(), "+919876543210", "123456"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if repo.deletes != 1 {
		t.Fatalf("expected code consumed, deletes=%d", repo.deletes)
	}

	// Second use of the same code must fail.
	err := svc.Verify(context.Background(), "+919876543210", "123456")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error on reuse, got %v", err)
	}
}

func TestVerifyRejectsExpiredCode(t *testing.T) {
	t.Parallel()

	repo := &stubOTPRepo{row: &models.OTPCode{
		Phone:     "+919876543210",
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(-time.Second),
	}}
	svc := newOTPService(t, repo, &stubSender{}, &stubLimiter{allowed: true})

	err := svc.Verify(context.Background(), "+919876543210", "123456")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.deletes != 0 {
		t.Fatalf("expired code must not be consumed")
	}
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	t.Parallel()

	repo := &stubOTPRepo{row: &models.OTPCode{
		Phone:     "+919876543210",
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}}
	svc := newOTPService(t, repo, &stubSender{}, &stubLimiter{allowed: true})

	err := svc.Verify(context.Background(), "+919876543210", "654321")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
