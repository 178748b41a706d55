package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/backend"
)

// entry is one cached response. Entries are replaced, not mutated.
type entry struct {
	resp      backend.Response
	writtenAt time.Time
}

// Memory is an in-process Store bounded by TTL and capacity.
// Eviction is oldest-write-first, not access-order LRU.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// Compile-time check: Memory implements Store.
var _ Store = (*Memory)(nil)

// NewMemory creates an in-memory query cache.
// Non-positive ttl or maxSize fall back to the defaults.
func NewMemory(ttl time.Duration, maxSize int) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the cached response for key. An entry older than the TTL is
// a miss; the stale entry is left for the write-path purge.
func (m *Memory) Get(_ context.Context, key string) (backend.Response, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return backend.Response{}, false
	}
	if m.now().Sub(e.writtenAt) > m.ttl {
		return backend.Response{}, false
	}
	return e.resp, true
}

// Put stores resp under key, purges expired entries, then evicts
// oldest-write-first until the entry count fits the capacity.
// Insert and eviction sweep run as one atomic step.
func (m *Memory) Put(_ context.Context, key string, resp backend.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[key] = entry{resp: resp, writtenAt: now}

	for k, e := range m.entries {
		if now.Sub(e.writtenAt) > m.ttl {
			delete(m.entries, k)
		}
	}

	for len(m.entries) > m.maxSize {
		oldestKey := ""
		var oldestAt time.Time
		for k, e := range m.entries {
			if oldestKey == "" || e.writtenAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.writtenAt
			}
		}
		delete(m.entries, oldestKey)
	}
}

// Clear drops every entry.
func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
}

// Stats returns the current size and configured bounds.
func (m *Memory) Stats(_ context.Context) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Size: len(m.entries), MaxSize: m.maxSize, TTL: m.ttl}
}
