package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paws4pals/inventory/internal/config"
)

const (
	keyPrefix     = "paws4pals:report:"
	scanBatchSize = 100
)

// Cache keys.
const (
	KeyDashboard  = "dashboard"
	KeyCategories = "categories"
)

// MonthlyKey names the cached movement report for a window of months.
func MonthlyKey(months int) string {
	return fmt.Sprintf("monthly:%d", months)
}

// TurnoverKey names the cached turnover report for a window of months.
func TurnoverKey(months int) string {
	return fmt.Sprintf("turnover:%d", months)
}

// Cache stores computed reports until the next inventory change.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopCache struct{}

// NewCache returns a Redis-backed cache when enabled, otherwise a cache that
// stores nothing.
func NewCache(cfg config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return NewNoopCache(), nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{client: client, ttl: cfg.TTL()}, nil
}

// NewNoopCache returns a cache that never hits.
func NewNoopCache() Cache {
	return noopCache{}
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, any) error         { return nil }
func (noopCache) InvalidateAll(context.Context) error            { return nil }
func (noopCache) Close() error                                   { return nil }

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	addr := cfg.RedisAddr
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	return &redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
