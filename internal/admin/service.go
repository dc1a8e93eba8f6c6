package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any bad admin email/password
// combination, including missing fields. Deliberately field-agnostic.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages admin authentication over cookie-backed sessions.
type Service struct {
	repo       Repository
	sessions   SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewService builds an admin session service.
func NewService(repo Repository, sessions SessionStore, sessionTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, sessionTTL: sessionTTL, logger: logger}
}

// SessionTTL reports the configured session lifetime, used for cookie expiry.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login verifies admin credentials and opens a session. Any credential
// problem collapses into ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, admin.ID, s.sessionTTL)
	if err != nil {
		return "", err
	}

	if s.logger != nil {
		s.logger.Info("admin login", slog.String("admin_id", admin.ID))
	}

	return sessionID, nil
}

// Logout closes the session. Unknown sessions are not an error from the
// caller's perspective.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Resolve maps a session id to the owning admin id.
func (s *Service) Resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrSessionNotFound
	}
	return s.sessions.Get(ctx, sessionID)
}
