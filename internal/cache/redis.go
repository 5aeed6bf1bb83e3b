package cache

import (
	"context"
	"fmt"
	"time"

	"quiz-forge/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and returns a new Redis client instance.
// It pings the server to ensure connectivity.
func NewRedisClient(ctx context.Context, cacheCfg config.CacheConfig) (*redis.Client, error) {
	if cacheCfg.Address == "" {
		return nil, fmt.Errorf("redis configuration is missing or address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cacheCfg.Address,
		Password: cacheCfg.Password,
		DB:       cacheCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cacheCfg.Address, err)
	}

	return client, nil
}
