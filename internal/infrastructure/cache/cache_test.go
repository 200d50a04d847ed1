package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
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
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestMemoryCache_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	clock.Advance(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok, "expired")

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestMemoryCache_DeleteAndSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Second))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Delete(ctx, "b"))

	clock.Advance(time.Minute)
	assert.Equal(t, 1, c.sweep())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "idempotent")
}

func TestFactory_Memory(t *testing.T) {
	f := NewFactory(config.RedisConfig{}, config.CacheConfig{Prefix: "p:"})
	c, err := f.Create()
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.IsType(t, &MemoryCache{}, c)
}

func TestFactory_RedisUnreachable(t *testing.T) {
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	c, err := NewFactory(unreachable, config.CacheConfig{}).Create()
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.IsType(t, &MemoryCache{}, c, "falls back")

	_, err = NewFactory(unreachable, config.CacheConfig{}, WithInMemoryFallback(false)).Create()
	assert.Error(t, err)
}

type point struct {
	Period string `json:"period"`
	Amount int    `json:"amount"`
}

func TestFetchJSON(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]point, error) {
		calls++
		return []point{{Period: "2024-05", Amount: 42}}, nil
	}

	first, err := FetchJSON(ctx, c, "forecast", time.Minute, load)
	require.NoError(t, err)
	second, err := FetchJSON(ctx, c, "forecast", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second call served from cache")
}

func TestFetchJSON_ErrorsNotCached(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()
	boom := errors.New("upstream down")

	_, err := FetchJSON(ctx, c, "k", time.Minute, func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)

	_, ok, _ := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestFetchJSON_CorruptEntryReloads(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("{not json"), time.Minute))

	v, err := FetchJSON(ctx, c, "k", time.Minute, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	raw, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "7", string(raw))
}

func TestFetchJSON_NilCache(t *testing.T) {
	v, err := FetchJSON(context.Background(), nil, "k", time.Minute, func(context.Context) (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}
