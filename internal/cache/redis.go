package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Mikheydazz/starmatch-bot/internal/config"
	"github.com/redis/go-redis/v9"
)

// counterTTL bounds how long a cached counter can drift from the store.
// Counters here are advisory only; the relational store stays authoritative.
const counterTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes the Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForLikeCount is the cache key for likes received by a user.
func (c *RedisCache) KeyForLikeCount(userID string) string {
	return fmt.Sprintf("likes:count:%s", userID)
}

// KeyForReportCount is the cache key for reports filed against a user.
func (c *RedisCache) KeyForReportCount(userID string) string {
	return fmt.Sprintf("reports:count:%s", userID)
}

// SetCounter stores a counter value with the standard TTL.
func (c *RedisCache) SetCounter(ctx context.Context, key string, count int64) error {
	return c.Client.Set(ctx, key, count, counterTTL).Err()
}

// GetCounter reads a cached counter. A miss is reported via ok=false rather
// than an error so callers can fall back to the store.
func (c *RedisCache) GetCounter(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	_ = c.Client.Expire(ctx, key, counterTTL).Err()
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

// BumpCounter increments an existing cached counter and refreshes its TTL.
// Missing keys are left absent so the next read repopulates from the store.
func (c *RedisCache) BumpCounter(ctx context.Context, key string, delta int64) {
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return
	}
	_ = c.Client.IncrBy(ctx, key, delta).Err()
	_ = c.Client.Expire(ctx, key, counterTTL).Err()
}
