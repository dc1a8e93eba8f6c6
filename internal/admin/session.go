package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "admin:session:"

// ErrSessionNotFound indicates the session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque session ids to admin ids with a TTL.
type SessionStore interface {
	Create(ctx context.Context, adminID string, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps admin sessions in Redis so they survive restarts
// and expire server-side.
type RedisSessionStore struct {
	cache *redis.Client
}

// NewRedisSessionStore builds a Redis-backed session store.
func NewRedisSessionStore(cache *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{cache: cache}
}

// Create stores a fresh session id for the admin and returns it.
func (s *RedisSessionStore) Create(ctx context.Context, adminID string, ttl time.Duration) (string, error) {
	sessionID := uuid.NewString()
	if err := s.cache.Set(ctx, sessionPrefix+sessionID, adminID, ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sessionID, nil
}

// Get resolves a session id to the owning admin id.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	adminID, err := s.cache.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return adminID, nil
}

// Delete removes the session.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Del(ctx, sessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type memorySession struct {
	adminID  string
	deadline time.Time
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

// NewMemorySessionStore builds an in-memory session store for tests.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]memorySession)}
}

func (s *memorySessionStore) Create(_ context.Context, adminID string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessionID := uuid.NewString()
	s.sessions[sessionID] = memorySession{adminID: adminID, deadline: time.Now().Add(ttl)}
	return sessionID, nil
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || time.Now().After(session.deadline) {
		delete(s.sessions, sessionID)
		return "", ErrSessionNotFound
	}
	return session.adminID, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
