// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"bloodlink/config"

	"github.com/go-redis/redis/v8"
)

// NewAuthCache creates the Redis client used for authorization caching.
func NewAuthCache(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
	return client
}
