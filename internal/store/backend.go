// Package store implements the key-value record store: generic CRUD over
// JSON-serialized arrays, one array per (entity type, user) pair, living
// in a flat string-to-string namespace.
//
// The namespace itself is abstracted as a Backend so the same record
// logic runs over an in-memory map in tests and a JSON file on disk in
// production. Every mutating call rewrites the whole per-user, per-entity
// sequence; this is O(n) per operation and fine at household scale.
package store

import "sync"

// Backend is a flat key-value namespace of serialized strings.
//
// Implementations must be safe for concurrent use. Get reports whether
// the key was present; a missing key is not an error.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
}

// MemoryBackend is a map-backed Backend with no persistence.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}
