package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ConnectRedis returns a client when REDIS_ADDR is configured and reachable,
// nil otherwise. Callers fall back to process-local reservation locks.
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logrus.Info("REDIS_ADDR not set, reservation locks stay in-process")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.WithError(err).Warn("Redis connection failed, reservation locks stay in-process")
		client.Close()
		return nil
	}

	logrus.Info("Connected to Redis")
	return client
}
