package cache

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store. It is the default when no cache path
// is configured, and the first tier in front of a persistent store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]json.RawMessage)}
}

func (m *Memory) Get(_ context.Context, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *Memory) Put(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy so callers can't mutate the stored value afterwards.
	buf := make(json.RawMessage, len(value))
	copy(buf, value)
	m.entries[key] = buf
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
