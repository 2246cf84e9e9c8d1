package store

import (
	"context"
	"sync"

	"github.com/serroba/rategate/internal/stats"
)

// MemoryStatsStore is an in-memory implementation of stats.Store.
type MemoryStatsStore struct {
	mu       sync.RWMutex
	counters map[string]stats.Counters
}

// NewMemoryStatsStore creates a new in-memory stats store.
func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		counters: make(map[string]stats.Counters),
	}
}

func (m *MemoryStatsStore) Record(_ context.Context, event stats.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.counters[event.Key]
	if event.Allowed {
		c.Allowed++
	} else {
		c.Denied++
	}

	m.counters[event.Key] = c

	return nil
}

func (m *MemoryStatsStore) Snapshot(_ context.Context) (map[string]stats.Counters, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]stats.Counters, len(m.counters))
	for key, c := range m.counters {
		out[key] = c
	}

	return out, nil
}
