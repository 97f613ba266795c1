package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	mem "tripgems/pkg/memcache"
)

// PlaceCache stores raw places API payloads keyed by city and category.
type PlaceCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

func placesCacheKey(city, category string) string {
	return fmt.Sprintf("places:v1:%s:%s", strings.ToLower(city), strings.ToLower(category))
}

func reviewsCacheKey(placeID string) string {
	return "reviews:v1:" + placeID
}

// --------- in-memory ---------

type memoryPlaceCache struct {
	store mem.Store
	ttl   time.Duration
}

func NewMemoryPlaceCache(store mem.Store, ttl time.Duration) PlaceCache {
	return &memoryPlaceCache{store: store, ttl: ttl}
}

func (c *memoryPlaceCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.store.Get(key)
}

func (c *memoryPlaceCache) Set(_ context.Context, key string, value []byte) {
	c.store.Set(key, value, c.ttl)
}

// --------- redis ---------

type redisPlaceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlaceCache(client *redis.Client, ttl time.Duration) PlaceCache {
	return &redisPlaceCache{client: client, ttl: ttl}
}

func (c *redisPlaceCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logCacheError(err, key, "get")
		}
		return nil, false
	}
	return b, true
}

func (c *redisPlaceCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		logCacheError(err, key, "set")
	}
}
