// Package cache provides a process-scoped TTL cache used to memoize
// Places API responses for the duration of one run. It is a cost
// reduction, not a correctness requirement: a run with no cache behaves
// identically, just slower and more expensive.
package cache

import (
	"sync"
	"time"
)

// Cache stores raw response bodies keyed by the full request
// parameters. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (string, bool)
	Put(key, value string, ttl time.Duration)
}

type entry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-memory Cache with per-entry TTL.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached value for key if present and not expired.
// Expired entries are removed on access.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

// Put stores value under key for ttl. A non-positive ttl stores nothing.
func (m *Memory) Put(key, value string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
