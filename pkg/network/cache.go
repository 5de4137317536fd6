package network

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

var ErrPathCacheMiss = errors.New("path result not cached")

// PathCache stores rendered path results. Get returns ErrPathCacheMiss for keys
// it does not hold.
type PathCache interface {
	Get(ctx context.Context, key string) (*PathResult, error)
	Set(ctx context.Context, key string, result *PathResult) error
}

type RedisPathCache struct {
	Cache *cache.Cache[string]
}

func NewRedisPathCache(client *redis.Client, expiration time.Duration) *RedisPathCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &RedisPathCache{
		Cache: cache.New[string](redisStore),
	}
}

func (c *RedisPathCache) Get(ctx context.Context, key string) (*PathResult, error) {
	value, err := c.Cache.Get(ctx, key)
	var notFound *store.NotFound
	if errors.As(err, &notFound) {
		return nil, ErrPathCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var result PathResult
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *RedisPathCache) Set(ctx context.Context, key string, result *PathResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(value))
}
