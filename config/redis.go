package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to REDIS_ADDR. It returns nil, nil when Redis is not
// configured so callers can run without a cache.
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	addr := GetRedisAddr()
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvInt("REDIS_DB", 0),
		DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 2*time.Second),
		ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", time.Second),
		WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", time.Second),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
