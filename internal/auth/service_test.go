package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-pay/vela_pay/internal/account"
	"github.com/vela-pay/vela_pay/internal/logging"
	"github.com/vela-pay/vela_pay/internal/storage"
	"github.com/vela-pay/vela_pay/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newFixture(t *testing.T) (account.Repository, *Service, *token.JWTIssuer) {
	t.Helper()
	repo := account.NewMemoryRepository()
	issuer := token.NewJWTIssuer(testSecret, time.Hour)
	denylist := NewMemoryDenylist()
	svc := NewService(repo, issuer, denylist, logging.Discard())
	return repo, svc, issuer
}

func registerUser(t *testing.T, repo account.Repository, email, password string) account.User {
	t.Helper()
	accounts := account.NewService(repo, storage.NewMemoryStore(), token.NewJWTIssuer(testSecret, time.Hour), nil, logging.Discard())
	user, _, err := accounts.Register(context.Background(), account.RegisterInput{
		Name:                 "Alice",
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
		PIN:                  "123456",
	})
	require.NoError(t, err)
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo, svc, _ := newFixture(t)
	registerUser(t, repo, "alice@x.com", "secret1")

	user, tok, err := svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, token.TypeBearer, tok.Type)
	assert.Positive(t, tok.ExpiresIn)
	assert.NotEmpty(t, tok.Value)
}

func TestLoginWrongPassword(t *testing.T) {
	repo, svc, _ := newFixture(t)
	registerUser(t, repo, "alice@x.com", "secret1")

	_, tok, err := svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "wrong66"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, tok.Value)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, svc, _ := newFixture(t)

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@x.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginValidatesInput(t *testing.T) {
	_, svc, _ := newFixture(t)

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "short"})

	var verr *account.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := account.NewMemoryRepository()
	issuer := token.NewJWTIssuer(testSecret, time.Hour)
	denylist := NewMemoryDenylist()
	svc := NewService(repo, issuer, denylist, logging.Discard())
	registerUser(t, repo, "alice@x.com", "secret1")

	ctx := context.Background()
	_, tok, err := svc.Login(ctx, LoginInput{Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := issuer.Parse(tok.Value)
	require.NoError(t, err)

	revoked, err := denylist.Revoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err = denylist.Revoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLoginResponseShapeMatchesRegistration(t *testing.T) {
	repo, svc, _ := newFixture(t)
	registered := registerUser(t, repo, "alice@x.com", "secret1")

	user, tok, err := svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	payload := account.NewAuthPayload(user, tok)
	assert.Equal(t, registered.ID, payload.ID)
	assert.Equal(t, "bearer", payload.TokenType)
	assert.True(t, strings.Count(payload.Token, ".") == 2, "expected compact JWT, got %q", payload.Token)
}
