package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "shopmate:search:"

// Cache stores serialized search results keyed by query shape. A miss is
// (nil, nil); cache failures are advisory and never fail a search.
type Cache interface {
	Get(ctx context.Context, key string) ([]Result, error)
	Set(ctx context.Context, key string, results []Result, ttl time.Duration) error
}

// NoopCache disables caching.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]Result, error) { return nil, nil }

func (NoopCache) Set(context.Context, string, []Result, time.Duration) error { return nil }

// RedisCache caches search results in Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Result, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, results []Result, ttl time.Duration) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+key, data, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CacheKey derives a stable key from the query shape.
func CacheKey(metric Metric, query string, topK int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", metric, topK, query)))
	return hex.EncodeToString(sum[:])
}
