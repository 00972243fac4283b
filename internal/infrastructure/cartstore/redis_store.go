package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/cafepos/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultCartPrefix    = "pos:cart:"
	defaultPendingPrefix = "pos:checkout:pending:"
	defaultChannelPrefix = "pos:cart:events:"
)

// RedisCartStore implements checkout.CartRepository and
// checkout.PendingCheckoutStore on Redis. The cart value is a JSON blob per
// session; change notifications ride on a per-session pub/sub channel so
// every view of the same cart reloads on external writes.
type RedisCartStore struct {
	client     *redis.Client
	cartTTL    time.Duration
	pendingTTL time.Duration
	logger     *zap.Logger
}

// NewRedisCartStore connects to Redis and verifies the connection.
func NewRedisCartStore(cfg config.RedisConfig, cartTTL, pendingTTL time.Duration, logger *zap.Logger) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, cartTTL, pendingTTL, logger), nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, cartTTL, pendingTTL time.Duration, logger *zap.Logger) *RedisCartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCartStore{
		client:     client,
		cartTTL:    cartTTL,
		pendingTTL: pendingTTL,
		logger:     logger,
	}
}

func cartKey(sessionID string) string {
	return defaultCartPrefix + sessionID
}

func pendingKey(correlationID uuid.UUID) string {
	return defaultPendingPrefix + correlationID.String()
}

func channelKey(sessionID string) string {
	return defaultChannelPrefix + sessionID
}

// Load reads the persisted cart. A missing or malformed payload yields an
// empty cart; malformed data is logged and evicted, never surfaced.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*checkout.Cart, error) {
	payload, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return checkout.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart checkout.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		s.logger.Warn("Malformed cart payload, treating as empty",
			zap.String("session_id", sessionID),
			zap.Error(err))
		_ = s.client.Del(ctx, cartKey(sessionID)).Err()
		return checkout.NewCart(), nil
	}
	if cart.Lines == nil {
		cart.Lines = []checkout.CartLine{}
	}

	return &cart, nil
}

// Save writes the cart through to Redis and notifies subscribers.
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart *checkout.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), payload, s.cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.publish(ctx, sessionID)
	return nil
}

// Clear evicts the persisted cart and notifies subscribers. Clearing an
// absent cart is a no-op.
func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.publish(ctx, sessionID)
	return nil
}

// Subscribe delivers a signal on every external save or clear of the
// session's cart. The returned cancel function releases the subscription.
func (s *RedisCartStore) Subscribe(ctx context.Context, sessionID string) (<-chan struct{}, func(), error) {
	pubsub := s.client.Subscribe(ctx, channelKey(sessionID))

	// Force the subscription to be established before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to cart changes: %w", err)
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer close(signals)
		for range pubsub.Channel() {
			select {
			case signals <- struct{}{}:
			default:
				// A pending signal already covers this change.
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return signals, cancel, nil
}

func (s *RedisCartStore) publish(ctx context.Context, sessionID string) {
	if err := s.client.Publish(ctx, channelKey(sessionID), "changed").Err(); err != nil {
		s.logger.Warn("Failed to publish cart change",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// Put stages a pending hosted checkout with the configured TTL.
func (s *RedisCartStore) Put(ctx context.Context, pending *checkout.PendingCheckout) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to encode pending checkout: %w", err)
	}

	if err := s.client.Set(ctx, pendingKey(pending.CorrelationID), payload, s.pendingTTL).Err(); err != nil {
		return fmt.Errorf("failed to stage pending checkout: %w", err)
	}
	return nil
}

// Get recovers a staged checkout by correlation id.
func (s *RedisCartStore) Get(ctx context.Context, correlationID uuid.UUID) (*checkout.PendingCheckout, error) {
	payload, err := s.client.Get(ctx, pendingKey(correlationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, checkout.ErrPendingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending checkout: %w", err)
	}

	var pending checkout.PendingCheckout
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending checkout: %w", err)
	}
	return &pending, nil
}

// Delete removes a staged checkout. Deleting an absent record is a no-op.
func (s *RedisCartStore) Delete(ctx context.Context, correlationID uuid.UUID) error {
	if err := s.client.Del(ctx, pendingKey(correlationID)).Err(); err != nil {
		return fmt.Errorf("failed to delete pending checkout: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements both repository interfaces
var (
	_ checkout.CartRepository       = (*RedisCartStore)(nil)
	_ checkout.PendingCheckoutStore = (*RedisCartStore)(nil)
)
