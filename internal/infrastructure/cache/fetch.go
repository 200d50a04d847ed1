package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/logger"
)

// FetchJSON returns the cached value under key, or calls load and caches its
// result for ttl. Cache failures degrade to calling load; load errors are
// returned and never cached. A nil cache always loads.
func FetchJSON[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	log := logger.L(ctx).With(zap.String("cache_key", key))

	raw, ok, err := c.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn("Cache read failed", zap.Error(err))
	case ok:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		log.Warn("Discarding undecodable cache entry")
		_ = c.Delete(ctx, key)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if b, err := json.Marshal(v); err == nil {
		if err := c.Set(ctx, key, b, ttl); err != nil {
			log.Warn("Cache write failed", zap.Error(err))
		}
	}
	return v, nil
}
