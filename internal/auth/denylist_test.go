package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisDenylist(t *testing.T) (*RedisDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	return NewRedisDenylist(cache), mr
}

func TestRedisDenylistRevoke(t *testing.T) {
	denylist, _ := newRedisDenylist(t)
	ctx := context.Background()

	revoked, err := denylist.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = denylist.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedisDenylistEntriesExpireWithToken(t *testing.T) {
	denylist, mr := newRedisDenylist(t)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "jti-2", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := denylist.Revoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisDenylistIgnoresExpiredTokens(t *testing.T) {
	denylist, _ := newRedisDenylist(t)

	// Nothing to block: the token is already past its expiry.
	require.NoError(t, denylist.Revoke(context.Background(), "jti-3", -time.Second))

	revoked, err := denylist.Revoked(context.Background(), "jti-3")
	require.NoError(t, err)
	assert.False(t, revoked)
}
