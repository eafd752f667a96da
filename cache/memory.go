package cache

import (
	"sync"
	"time"
)

// Memory implements the Cache interface with a mutex-guarded map.
// Expiry is lazy: nothing sweeps the map, an expired entry is removed by the
// first Get that observes it. The map is unbounded.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

var _ Cache = (*Memory)(nil)

type Option func(*Memory)

// WithClock replaces the wall clock used for expiry decisions
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates an empty in-memory cache
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Get implements Reader
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if entry.expired(m.now()) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have replaced it.
		if current, ok := m.entries[key]; ok && current.expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}

	return entry.Value, true
}

// Set implements Writer
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	entry := Entry{Value: value}
	if ttl > 0 {
		entry.ExpiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
}

// Delete implements Writer
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear implements Cache
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]Entry)
	m.mu.Unlock()
}

// Size implements Cache
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
