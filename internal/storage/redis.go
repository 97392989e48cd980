package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/homemenu/backend/internal/config"
	"github.com/homemenu/backend/pkg/logger"
)

// NewRedisClient connects to cfg.Addr and verifies the server answers a
// PING before returning.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed connecting to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("redis_connected", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})
	return client, nil
}
