package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Onlynfk/podground-backend-sub001/internal/config"
	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

// RedisSearchCache is the shared backend for multi-instance deployments.
// Redis expires entries natively, so Sweep has nothing to do.
type RedisSearchCache struct {
	client *redis.Client
	prefix string
}

// NewRedisSearchCache creates a new Redis-based search cache.
func NewRedisSearchCache(cfg config.RedisConfig, prefix string) (*RedisSearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisSearchCache{
		client: client,
		prefix: prefix,
	}, nil
}

var _ SearchCache = (*RedisSearchCache)(nil)

func (c *RedisSearchCache) storageKey(key string) string {
	return c.prefix + ":" + key
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) (*domain.SearchResponse, error) {
	data, err := c.client.Get(ctx, c.storageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var result domain.SearchResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &result, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, result *domain.SearchResponse, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, c.storageKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisSearchCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.storageKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}

	return nil
}

func (c *RedisSearchCache) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

func (c *RedisSearchCache) Close() error {
	return c.client.Close()
}
