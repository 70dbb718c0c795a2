// Package cache provides a keyed time-to-live cache with fetch-on-miss.
package cache

import (
	"context"
	"sync"
	"time"
)

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// FetchFunc produces a fresh value for a key on a miss
type FetchFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// TTL maps keys to (value, fetch-time) pairs.
// Entries older than the ttl passed to GetOrFetch are refetched.
type TTL[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	clk     Clock
	hits    int
	misses  int
}

// New creates an empty cache. A nil clock uses wall time.
func New[K comparable, V any](clk Clock) *TTL[K, V] {
	if clk == nil {
		clk = realClock{}
	}
	return &TTL[K, V]{
		entries: make(map[K]entry[V]),
		clk:     clk,
	}
}

// GetOrFetch returns the cached value for key if it is younger than ttl,
// otherwise calls fetch and stores the result. Failed fetches are not cached.
func (c *TTL[K, V]) GetOrFetch(ctx context.Context, key K, ttl time.Duration, fetch FetchFunc[V]) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	now := c.clk.Now()
	if ok && now.Sub(e.fetchedAt) < ttl {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return e.value, nil
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: v, fetchedAt: c.clk.Now()}
	c.mu.Unlock()

	return v, nil
}

// Age returns how long ago key was fetched
func (c *TTL[K, V]) Age(key K) (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	return c.clk.Now().Sub(e.fetchedAt), true
}

// Stats returns hit and miss counts
func (c *TTL[K, V]) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
