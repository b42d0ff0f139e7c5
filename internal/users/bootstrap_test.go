package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/config"
	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/enums"
	"github.com/trovekart/storefront-backend/pkg/security"
)

type stubUserRepo struct {
	existing *models.User
	created  []models.User
}

func (s *stubUserRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.existing != nil && s.existing.Email != nil && *s.existing.Email == email {
		return s.existing, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindOrCreateByPhone(ctx context.Context, phone string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) CreateAdmin(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := models.User{
		ID:           uuid.New(),
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         enums.RoleAdmin,
		IsActive:     true,
	}
	s.created = append(s.created, user)
	return &user, nil
}

func (s *stubUserRepo) List(ctx context.Context, role *enums.UserRole) ([]models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func (s *stubUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error { return nil }

func (s *stubUserRepo) UpdateProfile(ctx context.Context, user *models.User) error { return nil }

func bootstrapPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestEnsureAdminCreatesAccount(t *testing.T) {
	repo := &stubUserRepo{}

	err := EnsureAdmin(context.Background(), repo, bootstrapPasswordConfig(), "Admin@Example.com", "hunter2hunter2", nil)
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 admin created, got %d", len(repo.created))
	}
	created := repo.created[0]
	if *created.Email != "admin@example.com" {
		t.Fatalf("email not normalized: %q", *created.Email)
	}
	ok, err := security.VerifyPassword("hunter2hunter2", *created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify (ok=%v err=%v)", ok, err)
	}
}

func TestEnsureAdminSkipsExistingAccount(t *testing.T) {
	email := "admin@example.com"
	repo := &stubUserRepo{existing: &models.User{ID: uuid.New(), Email: &email, Role: enums.RoleAdmin}}

	if err := EnsureAdmin(context.Background(), repo, bootstrapPasswordConfig(), email, "ignored", nil); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no new admin, got %d", len(repo.created))
	}
}

func TestEnsureAdminGeneratesPasswordWhenEmpty(t *testing.T) {
	repo := &stubUserRepo{}

	if err := EnsureAdmin(context.Background(), repo, bootstrapPasswordConfig(), "admin@example.com", "", nil); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 admin created, got %d", len(repo.created))
	}
	if repo.created[0].PasswordHash == nil || *repo.created[0].PasswordHash == "" {
		t.Fatal("expected generated password hash")
	}
}

func TestEnsureAdminRequiresEmail(t *testing.T) {
	if err := EnsureAdmin(context.Background(), &stubUserRepo{}, bootstrapPasswordConfig(), "  ", "pw", nil); err == nil {
		t.Fatal("expected error for blank email")
	}
}
