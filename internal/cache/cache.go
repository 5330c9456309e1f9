// Package cache stores scored pairs so repeated batches against the same
// feature table skip the distance computation.
package cache

import (
	"context"
	"sync"
)

// Entry is a cached scoring result.
type Entry struct {
	Distance   float64
	Similarity float64
}

// Cache is a key/value store for scoring results.
type Cache interface {
	// Get returns the entry for key. A miss is reported by ok == false, not by an error.
	Get(ctx context.Context, key string) (e Entry, ok bool, err error)
	Set(ctx context.Context, key string, e Entry) error
}

// Memory is an in-process Cache. The zero value is not usable; call NewMemory.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]

	return e, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = e

	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
