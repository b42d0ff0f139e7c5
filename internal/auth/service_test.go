package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/config"
	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/enums"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

type stubUsers struct {
	byPhone map[string]*models.User
	byEmail map[string]*models.User
	created int
}

func (s *stubUsers) FindOrCreateByPhone(ctx context.Context, phone string) (*models.User, error) {
	if user, ok := s.byPhone[phone]; ok {
		return user, nil
	}
	s.created++
	user := &models.User{ID: uuid.New(), Phone: &phone, Role: enums.RoleCustomer, IsActive: true}
	if s.byPhone == nil {
		s.byPhone = map[string]*models.User{}
	}
	s.byPhone[phone] = user
	return user, nil
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type stubVerifier struct{ err error }

func (s *stubVerifier) Verify(ctx context.Context, phone, code string) error { return s.err }

type stubSession struct{ revoked []string }

func (s *stubSession) Generate(ctx context.Context, accessID string) (string, error) {
	return "refresh-" + accessID, nil
}

func (s *stubSession) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "new-access-id", "new-refresh", nil
}

func (s *stubSession) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 15,
	}
}

func newAuthService(t *testing.T, repo userRepository, verifier otpVerifier, verifyPw passwordVerifier) Service {
	t.Helper()
	if verifyPw == nil {
		verifyPw = func(password, encoded string) (bool, error) { return password == encoded, nil }
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		OTP:            verifier,
		SessionManager: &stubSession{},
		JWTConfig:      testJWTConfig(),
		VerifyPassword: verifyPw,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestPhoneLoginCreatesUserOnFirstVerify(t *testing.T) {
	t.Parallel()

	repo := &stubUsers{}
	svc := newAuthService(t, repo, &stubVerifier{}, nil)

	resp, err := svc.PhoneLogin(context.Background(), PhoneLoginRequest{Phone: "+919876543210", Code: "123456"})
	if err != nil {
		t.Fatalf("PhoneLogin: %v", err)
	}
	if repo.created != 1 {
		t.Fatalf("expected user created, got %d", repo.created)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User.Role != enums.RoleCustomer {
		t.Fatalf("expected customer role, got %s", resp.User.Role)
	}
}

func TestPhoneLoginNormalizesPhoneBeforeLookup(t *testing.T) {
	t.Parallel()

	repo := &stubUsers{}
	svc := newAuthService(t, repo, &stubVerifier{}, nil)

	first, err := svc.PhoneLogin(context.Background(), PhoneLoginRequest{Phone: "+91 98765 43210", Code: "123456"})
	if err != nil {
		t.Fatalf("PhoneLogin with spaced number: %v", err)
	}
	second, err := svc.PhoneLogin(context.Background(), PhoneLoginRequest{Phone: "+919876543210", Code: "123456"})
	if err != nil {
		t.Fatalf("PhoneLogin with compact number: %v", err)
	}

	if repo.created != 1 {
		t.Fatalf("spaced and compact forms must map to one account, got %d", repo.created)
	}
	if first.User.ID != second.User.ID {
		t.Fatalf("expected same user, got %s and %s", first.User.ID, second.User.ID)
	}
	if _, ok := repo.byPhone["+919876543210"]; !ok {
		t.Fatal("user must be keyed by the normalized phone")
	}
}

func TestPhoneLoginPropagatesOTPFailure(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid code")}
	repo := &stubUsers{}
	svc := newAuthService(t, repo, verifier, nil)

	_, err := svc.PhoneLogin(context.Background(), PhoneLoginRequest{Phone: "+919876543210", Code: "000000"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.created != 0 {
		t.Fatal("no user must be created on failed verify")
	}
}

func TestPhoneLoginRejectsDisabledAccount(t *testing.T) {
	t.Parallel()

	phone := "+919876543210"
	repo := &stubUsers{byPhone: map[string]*models.User{
		phone: {ID: uuid.New(), Phone: &phone, Role: enums.RoleCustomer, IsActive: false},
	}}
	svc := newAuthService(t, repo, &stubVerifier{}, nil)

	_, err := svc.PhoneLogin(context.Background(), PhoneLoginRequest{Phone: phone, Code: "123456"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAdminLoginRequiresAdminRole(t *testing.T) {
	t.Parallel()

	hash := "correct-password"
	repo := &stubUsers{byEmail: map[string]*models.User{
		"shop@example.com": {
			ID: uuid.New(), Role: enums.RoleCustomer, IsActive: true, PasswordHash: &hash,
		},
	}}
	svc := newAuthService(t, repo, &stubVerifier{}, nil)

	_, err := svc.AdminLogin(context.Background(), AdminLoginRequest{Email: "shop@example.com", Password: "correct-password"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAdminLoginSucceedsWithValidPassword(t *testing.T) {
	t.Parallel()

	hash := "correct-password"
	repo := &stubUsers{byEmail: map[string]*models.User{
		"admin@example.com": {
			ID: uuid.New(), Role: enums.RoleAdmin, IsActive: true, PasswordHash: &hash,
		},
	}}
	svc := newAuthService(t, repo, &stubVerifier{}, nil)

	resp, err := svc.AdminLogin(context.Background(), AdminLoginRequest{Email: "Admin@Example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if resp.User.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role, got %s", resp.User.Role)
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	hash := "correct-password"
	repo := &stubUsers{byEmail: map[string]*models.User{
		"admin@example.com": {
			ID: uuid.New(), Role: enums.RoleAdmin, IsActive: true, PasswordHash: &hash,
		},
	}}
	svc := newAuthService(t, repo, &stubVerifier{}, nil)

	_, err := svc.AdminLogin(context.Background(), AdminLoginRequest{Email: "admin@example.com", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	sess := &stubSession{}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUsers{},
		OTP:            &stubVerifier{},
		SessionManager: sess,
		JWTConfig:      testJWTConfig(),
		VerifyPassword: func(password, encoded string) (bool, error) { return false, nil },
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sess.revoked) != 1 || sess.revoked[0] != "access-id" {
		t.Fatalf("expected session revoked, got %v", sess.revoked)
	}
}
