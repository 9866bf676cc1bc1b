// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"radiant/config"

	"github.com/go-redis/redis/v8"
)

// VerifyCacheClient is the dedicated client for verification-state caching.
var VerifyCacheClient *redis.Client

// InitVerifyCache initializes the Redis client for verification state
// (using the DB from AppConfig reserved for it).
func InitVerifyCache() {
	VerifyCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisVerifyDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := VerifyCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Verify Cache): %v", err)
	}
}

// GetVerifyCacheClient returns the Redis client for verification state.
func GetVerifyCacheClient() *redis.Client {
	if VerifyCacheClient == nil {
		InitVerifyCache()
	}
	return VerifyCacheClient
}
