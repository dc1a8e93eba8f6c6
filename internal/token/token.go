package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TypeBearer is the token_type reported alongside every issued token.
const TypeBearer = "bearer"

// Token is an issued credential together with its declared lifetime.
type Token struct {
	Value     string
	ExpiresIn int64
	Type      string
}

// Claims carries the verified contents of an access token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issuer mints opaque bearer tokens for authenticated users.
type Issuer interface {
	Issue(ctx context.Context, userID string) (Token, error)
}

// IssuanceError reports a failure inside the token authority itself, as
// opposed to a credential problem on the caller's side.
type IssuanceError struct {
	Cause error
}

func (e *IssuanceError) Error() string {
	return fmt.Sprintf("token issuance failed: %v", e.Cause)
}

func (e *IssuanceError) Unwrap() error { return e.Cause }

// JWTIssuer signs HS256 tokens carrying the user id and a unique JTI.
type JWTIssuer struct {
	secret   []byte
	ttl      time.Duration
	timeFunc func() time.Time
}

// NewJWTIssuer builds an issuer from the shared signing secret and token lifetime.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, timeFunc: time.Now}
}

// Issue signs a fresh access token for the given user.
func (i *JWTIssuer) Issue(_ context.Context, userID string) (Token, error) {
	now := i.timeFunc()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, &IssuanceError{Cause: err}
	}

	return Token{Value: signed, ExpiresIn: int64(i.ttl.Seconds()), Type: TypeBearer}, nil
}

// Parse verifies a token string and returns its claims.
func (i *JWTIssuer) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
