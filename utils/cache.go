package utils

import (
	"context"
	"log"
	"time"

	"slotwise/config"

	"github.com/go-redis/redis/v8"
)

// OracleCacheClient backs the availability oracle's read-through cache.
var OracleCacheClient *redis.Client

// InitOracleCache initializes the Redis client for availability caching.
func InitOracleCache() {
	OracleCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := OracleCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (oracle cache): %v", err)
	}
}

// GetOracleCacheClient returns the availability cache client.
func GetOracleCacheClient() *redis.Client {
	if OracleCacheClient == nil {
		InitOracleCache()
	}
	return OracleCacheClient
}
