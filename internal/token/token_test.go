package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndParse(t *testing.T) {
	issuer := NewJWTIssuer(testSecret, time.Hour)

	tok, err := issuer.Issue(context.Background(), "user-123")
	require.NoError(t, err)

	assert.Equal(t, TypeBearer, tok.Type)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := issuer.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTIssuer(testSecret, time.Hour)
	other := NewJWTIssuer("ffffffffffffffffffffffffffffffff", time.Hour)

	tok, err := issuer.Issue(context.Background(), "user-123")
	require.NoError(t, err)

	_, err = other.Parse(tok.Value)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewJWTIssuer(testSecret, -time.Minute)

	tok, err := issuer.Issue(context.Background(), "user-123")
	require.NoError(t, err)

	_, err = issuer.Parse(tok.Value)
	require.Error(t, err)
}

func TestIssuedJTIsAreUnique(t *testing.T) {
	issuer := NewJWTIssuer(testSecret, time.Hour)

	first, err := issuer.Issue(context.Background(), "user-123")
	require.NoError(t, err)
	second, err := issuer.Issue(context.Background(), "user-123")
	require.NoError(t, err)

	firstClaims, err := issuer.Parse(first.Value)
	require.NoError(t, err)
	secondClaims, err := issuer.Parse(second.Value)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
