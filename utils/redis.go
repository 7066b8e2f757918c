package utils

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sharath018/pacs-portal-backend/config"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis connects the shared Redis client used for reset tokens
// and the public page cache
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := redisClient.Ping(redisCtx).Err(); err != nil {
		return err
	}

	log.Println("✅ Connected to Redis")
	return nil
}

// SetToken stores a value with TTL (password reset tokens)
func SetToken(key, value string, ttl time.Duration) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

// GetToken fetches a stored token value
func GetToken(key string) (string, error) {
	if redisClient == nil {
		return "", errors.New("redis not initialized")
	}
	return redisClient.Get(redisCtx, key).Result()
}

// DeleteToken removes a token after use
func DeleteToken(key string) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Del(redisCtx, key).Err()
}

// CacheSet stores a serialized payload with TTL
func CacheSet(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Set(ctx, key, payload, ttl).Err()
}

// CacheGet returns the cached payload, redis.Nil when absent
func CacheGet(ctx context.Context, key string) ([]byte, error) {
	if redisClient == nil {
		return nil, errors.New("redis not initialized")
	}
	return redisClient.Get(ctx, key).Bytes()
}

// CacheDelete evicts a cached payload
func CacheDelete(ctx context.Context, key string) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Del(ctx, key).Err()
}

// IsCacheMiss reports whether err is a plain cache miss
func IsCacheMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
