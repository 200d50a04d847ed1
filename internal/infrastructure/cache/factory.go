package cache

import (
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory builds the configured Cache.
type Factory struct {
	redis         config.RedisConfig
	prefix        string
	logger        *zap.Logger
	allowFallback bool
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// memory cache (default true).
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) { f.allowFallback = allow }
}

// NewFactory creates a cache factory
func NewFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redis:         redisCfg,
		prefix:        cacheCfg.Prefix,
		logger:        zap.NewNop(),
		allowFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache when enabled and reachable, otherwise the
// memory cache. With fallback disabled a Redis failure is returned.
func (f *Factory) Create() (Cache, error) {
	if !f.redis.Enabled {
		f.logger.Info("Using in-memory analytics cache")
		return NewMemoryCache(WithMemoryLogger(f.logger)), nil
	}

	c, err := NewRedisCache(f.redis.Addr(), f.redis.Password, f.redis.DB, f.prefix)
	if err == nil {
		f.logger.Info("Using Redis analytics cache", zap.String("addr", f.redis.Addr()))
		return c, nil
	}
	if !f.allowFallback {
		return nil, err
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory analytics cache",
		zap.String("addr", f.redis.Addr()),
		zap.Error(err))
	return NewMemoryCache(WithMemoryLogger(f.logger)), nil
}
