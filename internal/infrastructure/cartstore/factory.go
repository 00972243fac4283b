package cartstore

import (
	"fmt"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/cafepos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Store combines cart persistence with staged-checkout storage. Both Redis
// and in-memory implementations satisfy it.
type Store interface {
	checkout.CartRepository
	checkout.PendingCheckoutStore
}

// Factory creates cart stores based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	checkoutConfig        config.CheckoutConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true (allow fallback)
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new cart store factory
func NewFactory(redisCfg config.RedisConfig, checkoutCfg config.CheckoutConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           redisCfg,
		checkoutConfig:        checkoutCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-backed cart store
func (f *Factory) CreateRedisStore() (Store, error) {
	store, err := NewRedisCartStore(f.redisConfig, f.checkoutConfig.CartTTL, f.checkoutConfig.PendingTTL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis cart store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates a process-local cart store.
// WARNING: carts do not survive a restart and are not shared across
// process instances.
func (f *Factory) CreateInMemoryStore() Store {
	return NewInMemoryCartStore(f.checkoutConfig.PendingTTL)
}

// CreateStore tries Redis first and falls back to in-memory if Redis is
// unavailable and fallback is allowed
func (f *Factory) CreateStore() (Store, error) {
	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis cart store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cart storage but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart store. "+
		"Carts will not survive a restart.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
