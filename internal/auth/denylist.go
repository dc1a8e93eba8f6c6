package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "denylist:token:"

// Denylist records revoked token identifiers until their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

// RedisDenylist stores revoked JTIs in Redis with a TTL matching the
// remaining token lifetime, so entries expire with the tokens they block.
type RedisDenylist struct {
	cache *redis.Client
}

// NewRedisDenylist builds a Redis-backed token denylist.
func NewRedisDenylist(cache *redis.Client) *RedisDenylist {
	return &RedisDenylist{cache: cache}
}

// Revoke marks the token id as invalid for the given duration.
func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token already expired, nothing to block
	}
	if err := d.cache.Set(ctx, denylistPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Revoked reports whether the token id has been revoked.
func (d *RedisDenylist) Revoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.cache.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemoryDenylist builds an in-memory denylist for tests.
func NewMemoryDenylist() Denylist {
	return &memoryDenylist{revoked: make(map[string]time.Time)}
}

func (d *memoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (d *memoryDenylist) Revoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	deadline, ok := d.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(d.revoked, jti)
		return false, nil
	}
	return true, nil
}
