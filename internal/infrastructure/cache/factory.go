package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lockin/backend/internal/domain/shared"
	"github.com/lockin/backend/internal/infrastructure/config"
)

// DedupStoreFactory creates dedup stores based on configuration
type DedupStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DedupStoreFactoryOption is a functional option for configuring the factory
type DedupStoreFactoryOption func(*DedupStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DedupStoreFactoryOption {
	return func(f *DedupStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// store when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) DedupStoreFactoryOption {
	return func(f *DedupStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDedupStoreFactory creates a new factory
func NewDedupStoreFactory(cfg config.RedisConfig, opts ...DedupStoreFactoryOption) *DedupStoreFactory {
	f := &DedupStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based dedup store
func (f *DedupStoreFactory) CreateRedisStore() (shared.DedupStore, error) {
	store, err := NewRedisDedupStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis dedup store: %w", err)
	}

	return store, nil
}

// CreateInMemoryStore creates an in-memory dedup store
func (f *DedupStoreFactory) CreateInMemoryStore() shared.DedupStore {
	return NewInMemoryDedupStore()
}

// CreateStore creates a dedup store based on configuration. When Redis
// is disabled or unreachable it falls back to the in-memory store
// (unless fallback is disallowed). The store is only a fast path: the
// unique dedup key column remains the durable guard, so in-memory
// fallback cannot cause duplicate notifications.
func (f *DedupStoreFactory) CreateStore() (shared.DedupStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory dedup store")
		return f.CreateInMemoryStore(), nil
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis dedup store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for dedup but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory dedup store",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
