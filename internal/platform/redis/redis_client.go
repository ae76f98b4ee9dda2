// Package redis builds the optional cache client.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"around_backend/internal/platform/config"
)

// NewRedisClient connects to the configured Redis and verifies the connection.
// It returns a nil client and no error when no address is configured.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		slog.Info("Redis not configured, card cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr)
	return rdb, nil
}
