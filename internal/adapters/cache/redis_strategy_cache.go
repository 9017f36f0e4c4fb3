package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lane-strategy-service/internal/domain"
	"lane-strategy-service/internal/platform/obs"
	"lane-strategy-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "strategy:"

// Redis backed cache of computed strategies. A zero TTL keeps entries forever.
type RedisStrategyCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStrategyCache(client *redis.Client, ttl time.Duration) *RedisStrategyCache {
	return &RedisStrategyCache{Client: client, TTL: ttl}
}

// Fetch the cached strategy for key.
func (c *RedisStrategyCache) Get(ctx context.Context, key ports.StrategyKey) (_ *domain.Strategy, _ bool, err error) {
	defer obs.Time(ctx, "strategy.cache.redis.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("strategy cache: redis client is nil")
	}

	b, err := c.Client.Get(ctx, redisKeyPrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get strategy cache key=%s: %w", key, err)
	}

	strategy, err := decodeStrategy(b)
	if err != nil {
		return nil, false, fmt.Errorf("get strategy cache key=%s: %w", key, err)
	}
	return strategy, true, nil
}

// Store a strategy for key, replacing any previous entry.
func (c *RedisStrategyCache) Put(ctx context.Context, key ports.StrategyKey, strategy *domain.Strategy) (err error) {
	defer obs.Time(ctx, "strategy.cache.redis.Put")(&err)

	if c.Client == nil {
		return errors.New("strategy cache: redis client is nil")
	}

	payload, err := encodeStrategy(strategy)
	if err != nil {
		return fmt.Errorf("insert strategy cache key=%s: %w", key, err)
	}

	if err := c.Client.Set(ctx, redisKeyPrefix+key.String(), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert strategy cache key=%s: %w", key, err)
	}
	return nil
}
