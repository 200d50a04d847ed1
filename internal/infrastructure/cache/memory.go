package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCleanupInterval = 30 * time.Second
	defaultMemoryTTL       = 5 * time.Minute
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryCache is the in-process Cache. Expired entries are dropped lazily on
// read and by a background sweep.
type MemoryCache struct {
	entries sync.Map // map[string]*entry
	logger  *zap.Logger
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once

	hits   atomic.Int64
	misses atomic.Int64
}

// MemoryOption configures a MemoryCache
type MemoryOption func(*MemoryCache)

// WithMemoryLogger sets the logger
func WithMemoryLogger(logger *zap.Logger) MemoryOption {
	return func(c *MemoryCache) { c.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) { c.now = now }
}

// NewMemoryCache starts a memory cache and its cleanup goroutine. Close stops it.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		logger: zap.NewNop(),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.sweepLoop(defaultCleanupInterval)
	return c
}

// Get implements Cache
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if v, ok := c.entries.Load(key); ok {
		e := v.(*entry)
		if !e.expired(c.now()) {
			c.hits.Add(1)
			return e.value, true, nil
		}
		c.entries.CompareAndDelete(key, v)
	}
	c.misses.Add(1)
	return nil, false, nil
}

// Set implements Cache. A non-positive ttl uses the default of five minutes.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultMemoryTTL
	}
	c.entries.Store(key, &entry{value: value, expiresAt: c.now().Add(ttl)})
	return nil
}

// Delete implements Cache
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stopCh) })
	return nil
}

// Stats returns hit and miss counters.
func (c *MemoryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *MemoryCache) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := c.sweep(); n > 0 {
				c.logger.Debug("Evicted expired cache entries", zap.Int("count", n))
			}
		case <-c.stopCh:
			return
		}
	}
}

func (c *MemoryCache) sweep() int {
	now := c.now()
	n := 0
	c.entries.Range(func(k, v any) bool {
		if v.(*entry).expired(now) {
			c.entries.Delete(k)
			n++
		}
		return true
	})
	return n
}
