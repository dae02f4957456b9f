package quotes

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Cache stores serialized simulation responses keyed by their inputs.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// RedisCache is a Cache backed by a redis server.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisCache connects to the redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
	}
}

// Get returns the cached value for key.
func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key.
func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// MockCache is an in-memory Cache for tests and redis-less runs.
type MockCache struct {
	Data map[string]string
}

// NewMockCache creates an empty MockCache.
func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string]string),
	}
}

// Get returns the cached value for key.
func (m *MockCache) Get(key string) (string, bool) {
	val, ok := m.Data[key]
	return val, ok
}

// Set stores value under key.
func (m *MockCache) Set(key string, value string) error {
	m.Data[key] = value
	return nil
}
