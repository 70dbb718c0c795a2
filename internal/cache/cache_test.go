package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestGetOrFetch_HitWithinTTL(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)}
	c := New[string, int](clk)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls * 10, nil
	}

	v, err := c.GetOrFetch(ctx, "a", 10*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	clk.Advance(9 * time.Minute)
	v, err = c.GetOrFetch(ctx, "a", 10*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 10, v, "value should come from cache")
	assert.Equal(t, 1, calls)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestGetOrFetch_RefetchAfterTTL(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)}
	c := New[string, int](clk)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _ = c.GetOrFetch(ctx, "a", 10*time.Minute, fetch)
	clk.Advance(10 * time.Minute)
	v, err := c.GetOrFetch(ctx, "a", 10*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	age, ok := c.Age("a")
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), age)
}

func TestGetOrFetch_KeysIndependent(t *testing.T) {
	c := New[[2]float64, string](nil)
	ctx := context.Background()

	a, _ := c.GetOrFetch(ctx, [2]float64{35.5, 140.4}, time.Hour, func(context.Context) (string, error) { return "kujukuri", nil })
	b, _ := c.GetOrFetch(ctx, [2]float64{35.7, 140.8}, time.Hour, func(context.Context) (string, error) { return "choshi", nil })

	assert.Equal(t, "kujukuri", a)
	assert.Equal(t, "choshi", b)
}

func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	c := New[string, int](nil)
	ctx := context.Background()
	boom := errors.New("upstream down")

	_, err := c.GetOrFetch(ctx, "a", time.Hour, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	_, ok := c.Age("a")
	assert.False(t, ok)

	v, err := c.GetOrFetch(ctx, "a", time.Hour, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
