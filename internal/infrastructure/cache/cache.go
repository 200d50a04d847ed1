// Package cache stores serialized analytics responses. Redis is preferred;
// an in-process TTL map stands in when Redis is disabled or unreachable.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented TTL cache. Get reports a miss with ok=false and a
// nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
