package cache

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	data      T
	expiresAt int64 // epoch ms
}

// Memory is a process-local cache. Expired entries are dropped lazily on
// read; there is no sweep and no size bound, and nothing is shared across
// processes. Run the Redis backend when scaling horizontally.
type Memory[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	now     func() time.Time
}

// MemoryOption customizes a Memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now func() time.Time
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemory constructs an empty Memory cache.
func NewMemory[T any](opts ...MemoryOption) *Memory[T] {
	o := memoryOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Memory[T]{
		entries: make(map[string]entry[T]),
		now:     o.now,
	}
}

// Get returns a live entry. An expired entry is deleted and reported as a miss.
func (m *Memory[T]) Get(_ context.Context, key string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	e, ok := m.entries[key]
	if !ok {
		return zero, false
	}
	if m.now().UnixMilli() >= e.expiresAt {
		delete(m.entries, key)
		return zero, false
	}
	return e.data, true
}

// Set stores value, overwriting any existing entry. A non-positive ttl is a no-op.
func (m *Memory[T]) Set(_ context.Context, key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry[T]{data: value, expiresAt: m.now().Add(ttl).UnixMilli()}
}

// Len reports stored entries, including expired ones not yet read.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
