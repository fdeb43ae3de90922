package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RequestListKey  = "repair_requests:list"
	CategoryListKey = "categories:list"
	UserListKey     = "users:list"
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection leaves the
// package in degraded mode: every helper becomes a no-op and callers
// fall through to the database.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of username+password for cache key
func hashCredentials(username, password string) string {
	h := sha256.New()
	h.Write([]byte(username + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, username, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(username, password)).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, username, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(username, password), userID, 15*time.Minute)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateRequestCaches clears repair-request derived caches.
// Called when: CreateRepairRequest, UpdateRepairRequest, DeleteRepairRequest
func InvalidateRequestCaches(ctx context.Context) {
	InvalidateKeys(ctx, RequestListKey)
}

// InvalidateCategoryCaches clears category caches.
func InvalidateCategoryCaches(ctx context.Context) {
	InvalidateKeys(ctx, CategoryListKey)
}

// InvalidateUserCaches clears user caches.
func InvalidateUserCaches(ctx context.Context) {
	InvalidateKeys(ctx, UserListKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
