package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"borntoday-backend/pkg/cache"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is a process-local backend. Values are JSON encoded so callers
// observe the same copy semantics as with RedisCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time

	// Set sweeps expired entries once the map grows to sweepAt.
	minSweep int
	sweepAt  int
}

const defaultSweepThreshold = 1024

type MemoryOption func(*MemoryCache)

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryCache) { m.now = now }
}

// WithSweepThreshold sets the entry count that triggers the first sweep.
func WithSweepThreshold(n int) MemoryOption {
	return func(m *MemoryCache) {
		if n > 0 {
			m.minSweep = n
		}
	}
}

func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	m := &MemoryCache{
		entries:  make(map[string]memoryEntry),
		now:      time.Now,
		minSweep: defaultSweepThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sweepAt = m.minSweep
	return m
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if e.expired(m.now()) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	if len(m.entries) >= m.sweepAt {
		m.sweepLocked()
	}
	m.mu.Unlock()
	return nil
}

// sweepLocked drops expired entries and moves the next sweep to twice the
// surviving size.
func (m *MemoryCache) sweepLocked() {
	now := m.now()
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
	m.sweepAt = 2 * len(m.entries)
	if m.sweepAt < m.minSweep {
		m.sweepAt = m.minSweep
	}
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

// Len reports the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

var _ cache.Cache = (*MemoryCache)(nil)
