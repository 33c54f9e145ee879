// Package cache provides an optional Redis read cache for the catalog.
// The document store stays the source of truth: every catalog mutation
// invalidates the cached listing, and entries expire on a short TTL as a
// backstop.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"metagift-api/internal/logger"
	"metagift-api/internal/model"
)

const catalogKey = "metagift:catalog:items"

// Catalog caches the item listing in Redis. A nil *Catalog is valid and
// behaves as a permanent miss, so callers never branch on availability.
type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalog creates a catalog cache. Returns an error when Redis is
// unreachable; callers treat that as "run without a cache".
func NewCatalog(client *redis.Client, ttl time.Duration) (*Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Catalog{client: client, ttl: ttl}, nil
}

// Get returns the cached listing and whether it was present.
func (c *Catalog) Get(ctx context.Context) ([]model.Item, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("catalog cache payload invalid", zap.Error(err))
		return nil, false
	}
	return items, true
}

// Set stores the listing. Failures are logged and ignored.
func (c *Catalog) Set(ctx context.Context, items []model.Item) {
	if c == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, catalogKey, data, c.ttl).Err(); err != nil {
		logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing after a catalog mutation.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
