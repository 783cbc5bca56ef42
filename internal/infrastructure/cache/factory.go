package cache

import (
	"fmt"

	"go.uber.org/zap"
)

// Factory creates cache stores based on configuration.
type Factory struct {
	redisConfig           RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory.
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory.
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new store factory.
func NewFactory(cfg RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore creates a Redis store, falling back to in-memory when Redis is
// unavailable and fallback is allowed.
func (f *Factory) CreateStore(keyPrefix string) (Store, error) {
	store, err := NewRedisStore(f.redisConfig, keyPrefix)
	if err == nil {
		f.logger.Info("Using Redis cache store",
			zap.String("host", f.redisConfig.Host),
			zap.Int("port", f.redisConfig.Port),
		)
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis cache store unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache store",
		zap.Error(err),
	)
	return NewInMemoryStore(), nil
}
