// internal/store/store.go
//
// String-keyed JSON blob storage behind the persistence adapter.
// The interface mirrors a browser localStorage surface: get/set/remove on
// opaque values. Implementations here are memory (ephemeral runs, tests)
// and SQLite (sqlite.go).
//
// Characteristics of the memory store:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get reports a found flag rather than an error for missing keys.

package store

import (
	"context"
	"sync"
)

// KV is the persistence interface for string-keyed blobs.
// Implementations may be backed by memory (this package), SQLite, etc.
type KV interface {
	// Get retrieves the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set writes or overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// memory is an in-memory map-based KV implementation.
type memory struct {
	mu    sync.RWMutex      // guards blobs map
	blobs map[string][]byte // keyed by namespaced key
}

// NewMemory constructs a new in-memory KV.
func NewMemory() KV {
	return &memory{blobs: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.blobs[key] = v
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
