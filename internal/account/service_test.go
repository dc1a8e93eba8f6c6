package account

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-pay/vela_pay/internal/logging"
	"github.com/vela-pay/vela_pay/internal/storage"
	"github.com/vela-pay/vela_pay/internal/token"
)

type stubIssuer struct {
	fail bool
}

func (s *stubIssuer) Issue(_ context.Context, userID string) (token.Token, error) {
	if s.fail {
		return token.Token{}, &token.IssuanceError{Cause: errors.New("signer unavailable")}
	}
	return token.Token{Value: "tok-" + userID, ExpiresIn: 3600, Type: token.TypeBearer}, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, storage.NewMemoryStore(), &stubIssuer{}, nil, logging.Discard())
}

func validInput(email string) RegisterInput {
	return RegisterInput{
		Name:                 "Alice",
		Email:                email,
		Password:             "secret1",
		PasswordConfirmation: "secret1",
		PIN:                  "123456",
	}
}

// pngPayload is a minimal buffer carrying the PNG signature, enough for
// content sniffing.
func pngPayload(t *testing.T) string {
	t.Helper()
	data := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	return base64.StdEncoding.EncodeToString(data)
}

func TestRegisterCreatesUserAndWallet(t *testing.T) {
	repo := NewMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	user, tok, err := svc.Register(ctx, validInput("alice@x.com"))
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, "alice@x.com", user.Username)
	assert.False(t, user.Verified)
	assert.Empty(t, user.ProfilePicture)

	assert.NotEmpty(t, tok.Value)
	assert.Equal(t, token.TypeBearer, tok.Type)
	assert.Positive(t, tok.ExpiresIn)

	stored, err := repo.FindUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	wallet, err := repo.WalletByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), wallet.Balance)
	assert.Equal(t, "123456", wallet.PIN)
	assert.Len(t, wallet.CardNumber, CardNumberLength)
	for _, r := range wallet.CardNumber {
		assert.True(t, r >= '0' && r <= '9', "card number digit %q", r)
	}
}

func TestRegisterWithKTPMarksVerified(t *testing.T) {
	repo := NewMemoryRepository()
	svc := newTestService(repo)

	input := validInput("bob@x.com")
	input.KTP = pngPayload(t)

	user, _, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, user.Verified)
	assert.True(t, strings.HasSuffix(user.KTP, ".png"), "ktp reference %q", user.KTP)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	repo := NewMemoryRepository()
	svc := newTestService(repo)

	input := validInput("carol@x.com")
	input.PasswordConfirmation = "different"

	_, _, err := svc.Register(context.Background(), input)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password_confirmation")

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Users)
	assert.Zero(t, stats.Wallets)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validInput("dup@x.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, validInput("dup@x.com"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(1), stats.Wallets)
}

func TestRegisterRejectsBadPIN(t *testing.T) {
	repo := NewMemoryRepository()
	svc := newTestService(repo)

	for _, pin := range []string{"", "12345", "1234567", "12ab56"} {
		input := validInput("pin@x.com")
		input.PIN = pin

		_, _, err := svc.Register(context.Background(), input)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "pin %q", pin)
		assert.Contains(t, verr.Fields, "pin")
	}
}

func TestRegisterRejectsUndecodableImage(t *testing.T) {
	repo := NewMemoryRepository()
	svc := newTestService(repo)

	input := validInput("img@x.com")
	input.ProfilePicture = base64.StdEncoding.EncodeToString([]byte("not an image"))

	_, _, err := svc.Register(context.Background(), input)

	var perr *ProvisioningError
	require.ErrorAs(t, err, &perr)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Users)
}

func TestRegisterSurfacesIssuerFault(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, storage.NewMemoryStore(), &stubIssuer{fail: true}, nil, logging.Discard())

	_, _, err := svc.Register(context.Background(), validInput("tok@x.com"))

	var terr *token.IssuanceError
	require.ErrorAs(t, err, &terr)
}

func TestConcurrentRegistrationsGetDistinctCardNumbers(t *testing.T) {
	repo := NewMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	users := make([]User, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			users[i], _, errs[i] = svc.Register(ctx, validInput(fmt.Sprintf("user%d@x.com", i)))
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i], "registration %d", i)
		wallet, err := repo.WalletByUserID(ctx, users[i].ID)
		require.NoError(t, err)
		if _, dup := seen[wallet.CardNumber]; dup {
			t.Fatalf("duplicate card number %s", wallet.CardNumber)
		}
		seen[wallet.CardNumber] = struct{}{}
	}
	require.Len(t, seen, n)
}
