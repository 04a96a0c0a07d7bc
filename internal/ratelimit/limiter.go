// Package ratelimit provides fixed-window request counting with
// interchangeable backends: in-process for single instances, Redis when
// replicas must share a budget.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window counts hits for a key within the current fixed window. The returned
// count includes the hit being recorded; retryAfter is how long until the
// window resets.
type Window interface {
	Incr(ctx context.Context, key string) (count int, retryAfter time.Duration, err error)
}

type bucket struct {
	count   int
	resetAt time.Time
}

// Memory is the single-process backend. Entries expire lazily on the next
// hit after their window closes.
type Memory struct {
	mu      sync.Mutex
	window  time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemory(window time.Duration) *Memory {
	return &Memory{
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *Memory) Incr(_ context.Context, key string) (int, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(m.window)}
		m.buckets[key] = b
	}
	b.count++
	return b.count, b.resetAt.Sub(now), nil
}
