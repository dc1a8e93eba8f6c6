package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/vela-pay/vela_pay/internal/account"
	"github.com/vela-pay/vela_pay/internal/token"
)

// ErrInvalidCredentials is returned for any bad email/password combination.
// It never reveals which field was wrong.
var ErrInvalidCredentials = errors.New("login credentials are invalid")

// Service authenticates sessions: it verifies login credentials, issues
// bearer tokens and invalidates them on logout.
type Service struct {
	repo     account.Repository
	issuer   token.Issuer
	denylist Denylist
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService builds a session authentication service.
func NewService(repo account.Repository, issuer token.Issuer, denylist Denylist, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		issuer:   issuer,
		denylist: denylist,
		logger:   logger,
		validate: account.NewValidator(),
	}
}

// LoginInput captures the login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login verifies credentials and issues a bearer token. Bad credentials yield
// ErrInvalidCredentials with no token; issuer faults surface as
// *token.IssuanceError.
func (s *Service) Login(ctx context.Context, input LoginInput) (account.User, token.Token, error) {
	if verr := account.FieldErrors(s.validate.Struct(input)); verr != nil {
		return account.User{}, token.Token{}, verr
	}

	user, err := s.repo.FindUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return account.User{}, token.Token{}, ErrInvalidCredentials
		}
		return account.User{}, token.Token{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(input.Password)); err != nil {
		return account.User{}, token.Token{}, ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(ctx, user.ID)
	if err != nil {
		return account.User{}, token.Token{}, err
	}

	if s.logger != nil {
		s.logger.Info("login succeeded", slog.String("user_id", user.ID))
	}

	return user, tok, nil
}

// Logout revokes the presented token until its natural expiry. Calls with an
// already expired token are a no-op.
func (s *Service) Logout(ctx context.Context, claims *token.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}
