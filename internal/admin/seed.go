package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedInput describes the bootstrap admin account.
type SeedInput struct {
	Name     string
	Email    string
	Password string
}

// EnsureBootstrapAdmin inserts the bootstrap admin account if no admin with
// that email exists yet. Safe to run on every deploy.
func EnsureBootstrapAdmin(ctx context.Context, repo Repository, input SeedInput, logger *slog.Logger) error {
	if input.Email == "" || input.Password == "" {
		return fmt.Errorf("bootstrap admin email and password are required")
	}

	if _, err := repo.FindByEmail(ctx, input.Email); err == nil {
		if logger != nil {
			logger.Info("bootstrap admin already present", slog.String("email", input.Email))
		}
		return nil
	} else if !errors.Is(err, ErrAdminNotFound) {
		return fmt.Errorf("check bootstrap admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	admin := Admin{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	if logger != nil {
		logger.Info("bootstrap admin created", slog.String("email", input.Email))
	}
	return nil
}
