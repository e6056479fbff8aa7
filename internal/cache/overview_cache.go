package cache

import (
	"context"
	"encoding/json"
	"time"

	"go-event-ticketing/internal/model"

	"github.com/redis/go-redis/v9"
)

const overviewKey = "catalog:overview"

// OverviewCache keeps the catalog overview (counts, low-stock and sold-out
// buckets, upcoming events) out of the hot path. Entries expire on a short
// TTL and are invalidated whenever a purchase changes availability.
type OverviewCache interface {
	// Get returns the cached overview, or nil on a miss.
	Get(ctx context.Context) (*model.CatalogOverview, error)
	Set(ctx context.Context, overview *model.CatalogOverview) error
	Invalidate(ctx context.Context) error
}

type RedisOverviewCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOverviewCache(client *redis.Client, ttl time.Duration) OverviewCache {
	return &RedisOverviewCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisOverviewCacheImpl) Get(ctx context.Context) (*model.CatalogOverview, error) {
	data, err := c.client.Get(ctx, overviewKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var overview model.CatalogOverview
	if err := json.Unmarshal(data, &overview); err != nil {
		return nil, err
	}

	return &overview, nil
}

func (c *RedisOverviewCacheImpl) Set(ctx context.Context, overview *model.CatalogOverview) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, overviewKey, data, c.ttl).Err()
}

func (c *RedisOverviewCacheImpl) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, overviewKey).Err()
}
