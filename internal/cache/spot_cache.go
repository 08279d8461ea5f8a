// Package cache provides an optional Redis-backed read cache for the spot
// grid. A nil *SpotCache is valid and disables caching, so callers never have
// to branch on whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"parkspot/internal/db"
)

// NewRedisClient connects to Redis at addr. Returns nil when addr is empty or
// the server cannot be reached; the service then runs uncached.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, spot cache disabled: %v", addr, err)
		return nil
	}
	return client
}

type SpotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSpotCache(client *redis.Client, ttl time.Duration) *SpotCache {
	if client == nil {
		return nil
	}
	return &SpotCache{client: client, ttl: ttl}
}

func (c *SpotCache) key(complex string) string {
	return "spots:" + complex
}

func (c *SpotCache) Get(ctx context.Context, complex string) ([]db.ParkingSpot, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(complex)).Bytes()
	if err != nil {
		return nil, false
	}
	var spots []db.ParkingSpot
	if err := json.Unmarshal(payload, &spots); err != nil {
		return nil, false
	}
	return spots, true
}

func (c *SpotCache) Set(ctx context.Context, complex string, spots []db.ParkingSpot) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(spots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(complex), payload, c.ttl).Err(); err != nil {
		log.Printf("spot cache set failed for %s: %v", complex, err)
	}
}

func (c *SpotCache) Invalidate(ctx context.Context, complex string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(complex)).Err(); err != nil {
		log.Printf("spot cache invalidate failed for %s: %v", complex, err)
	}
}
