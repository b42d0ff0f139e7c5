package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/config"
	"github.com/trovekart/storefront-backend/pkg/logger"
	"github.com/trovekart/storefront-backend/pkg/security"
)

const tempPasswordLength = 16

// EnsureAdmin creates the back-office admin account when it does not exist
// yet. Intended for dev environments where nobody has run a manual seed.
// With an empty password a random one is generated and logged once.
func EnsureAdmin(ctx context.Context, repo Repository, pwCfg config.PasswordConfig, email, password string, logg *logger.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("admin email is required")
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("admin lookup: %w", err)
	}

	generated := false
	if password == "" {
		temp, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		password = temp
		generated = true
	}

	hash, err := security.HashPassword(password, pwCfg)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := repo.CreateAdmin(ctx, email, hash); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "email", email)
		if generated {
			// Logged exactly once at creation; rotate it after first login.
			ctx = logg.WithField(ctx, "temp_password", password)
		}
		logg.Info(ctx, "admin account created")
	}
	return nil
}
