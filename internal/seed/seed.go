package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// DefaultAdminName is the display name of the seeded administrator
const DefaultAdminName = "System Administrator"

// UserStore is the part of the user repository the seeder needs
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// AdminAccount describes the administrator that must exist at startup
type AdminAccount struct {
	Email    string
	Password string
}

// EnsureAdmin creates the default administrator when no account uses its
// email. An existing account is left untouched, including its password.
func EnsureAdmin(ctx context.Context, users UserStore, account AdminAccount, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(account.Email))
	if email == "" {
		return errors.New("admin email is not configured")
	}

	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("checking admin account: %w", err)
	}
	if exists {
		lgr.Info().Str("email", email).Msg("Admin user already exists, skipping creation")
		return nil
	}

	if account.Password == "" {
		lgr.Warn().Str("email", email).Msg("Admin password not configured, default admin not created")
		return nil
	}
	if err := auth.ValidatePasswordStrength(account.Password); err != nil {
		return fmt.Errorf("admin password rejected: %w", err)
	}

	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &models.User{
		Name:       DefaultAdminName,
		Email:      email,
		Password:   hash,
		Role:       models.RoleAdmin,
		IsVerified: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		// Another instance may have seeded it between the check and the insert
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("creating admin user: %w", err)
	}

	lgr.Info().Int64("adminID", admin.ID).Str("email", email).Msg("Default admin user created")
	return nil
}
