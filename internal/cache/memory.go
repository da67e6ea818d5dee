package cache

import (
	"context"
	"sync"

	"github.com/evmtools/t8nkit/pkg/domain"
)

// Memory is a process-local ResultCache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*domain.Transition
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*domain.Transition)}
}

// Get returns the cached transition or domain.ErrNotCached.
func (m *Memory) Get(ctx context.Context, key string) (*domain.Transition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tr, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotCached
	}
	return tr, nil
}

// Put stores a transition under key.
func (m *Memory) Put(ctx context.Context, key string, tr *domain.Transition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = tr
	return nil
}
