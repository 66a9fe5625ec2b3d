package cache

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects to redis and verifies the connection with a ping.
func InitRedis(config utils.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", config.Addr, err)
	}

	logger.Info("Redis connection established", zap.String("addr", config.Addr))
	return rdb, nil
}
