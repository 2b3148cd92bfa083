package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// SweetCache is a read-through cache for sweet documents, keyed by id.
// Key format: sweet:<id>
type SweetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSweetCache creates a SweetCache wrapping the given Redis client.
func NewSweetCache(client *redis.Client, ttl time.Duration) *SweetCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &SweetCache{client: client, ttl: ttl}
}

// Get returns the cached sweet and whether it was present.
func (c *SweetCache) Get(ctx context.Context, id string) (*domain.Sweet, bool, error) {
	val, err := c.client.Get(ctx, c.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var s domain.Sweet
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &s, true, nil
}

// Set stores the sweet with the configured TTL.
func (c *SweetCache) Set(ctx context.Context, sweet *domain.Sweet) error {
	b, err := json.Marshal(sweet)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(sweet.ID), b, c.ttl).Err()
}

// Invalidate drops the cached entry. Called on every mutation of the sweet.
func (c *SweetCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *SweetCache) key(id string) string {
	return "sweet:" + id
}
