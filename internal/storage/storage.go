package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ObjectStore persists binary objects and returns the reference under which
// they were stored.
type ObjectStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// DiskStore writes objects to a local directory acting as the "public" bucket.
type DiskStore struct {
	root string
}

// NewDiskStore ensures the backing directory exists and returns the store.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Put writes the object under its name and returns the name as the stored reference.
func (s *DiskStore) Put(_ context.Context, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", name, err)
	}
	return name, nil
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryStore builds an in-memory object store for tests.
func NewMemoryStore() ObjectStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (s *memoryStore) Put(_ context.Context, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[name] = buf
	return name, nil
}
