package repository

import (
	"context"
	"errors"
	"time"

	"enrollment/domain"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const lookupKeyPrefix = "enrollment:lookup:"

type redisLookupCache struct {
	client *redis.Client
}

// NewRedisLookupCache returns nil when client is nil, which turns caching off.
func NewRedisLookupCache(client *redis.Client) domain.LookupCache {
	if client == nil {
		return nil
	}
	return &redisLookupCache{client: client}
}

func (c *redisLookupCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, lookupKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := sonic.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisLookupCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, lookupKeyPrefix+key, raw, ttl).Err()
}

func (c *redisLookupCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = lookupKeyPrefix + k
	}
	return c.client.Del(ctx, full...).Err()
}
