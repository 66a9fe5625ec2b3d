package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food-marketplace/internal/cart"

	"github.com/jellydator/ttlcache/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CartRepository stores one cart per session id. Get returns (nil, nil) for unknown sessions.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// ==================== REDIS ====================

type redisCartRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
	log *zap.Logger
}

func NewRedisCartRepository(rdb redis.Cmdable, ttl time.Duration, log *zap.Logger) CartRepository {
	return &redisCartRepository{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "cart"), zap.String("backend", "redis")),
	}
}

func (r *redisCartRepository) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := r.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load cart", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return &c, nil
}

// Save writes the cart and refreshes its TTL
func (r *redisCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", c.SessionID, err)
	}

	if err := r.rdb.Set(ctx, cartKey(c.SessionID), data, r.ttl).Err(); err != nil {
		r.log.Error("Failed to save cart", zap.Error(err), zap.String("session_id", c.SessionID))
		return fmt.Errorf("save cart %s: %w", c.SessionID, err)
	}
	return nil
}

func (r *redisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		r.log.Error("Failed to delete cart", zap.Error(err), zap.String("session_id", sessionID))
		return fmt.Errorf("delete cart %s: %w", sessionID, err)
	}
	return nil
}

// ==================== MEMORY ====================

// memoryCartRepository keeps carts in process when redis is not configured. Carts are
// stored encoded so callers never share state with the cache.
type memoryCartRepository struct {
	carts *ttlcache.Cache[string, []byte]
	ttl   time.Duration
}

func NewMemoryCartRepository(ttl time.Duration) CartRepository {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	carts := ttlcache.New[string, []byte](
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go carts.Start()

	return &memoryCartRepository{carts: carts, ttl: ttl}
}

func (r *memoryCartRepository) Get(_ context.Context, sessionID string) (*cart.Cart, error) {
	item := r.carts.Get(cartKey(sessionID))
	if item == nil {
		return nil, nil
	}

	var c cart.Cart
	if err := json.Unmarshal(item.Value(), &c); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return &c, nil
}

// Save writes the cart and refreshes its TTL
func (r *memoryCartRepository) Save(_ context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", c.SessionID, err)
	}

	r.carts.Set(cartKey(c.SessionID), data, r.ttl)
	return nil
}

func (r *memoryCartRepository) Delete(_ context.Context, sessionID string) error {
	r.carts.Delete(cartKey(sessionID))
	return nil
}
