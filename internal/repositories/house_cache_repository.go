package repositories

import (
	"context"
	"time"

	"ihome-rentals/pkg/cache"
)

type houseCache struct {
	client *cache.Client
}

func NewHouseCache(client *cache.Client) HouseCache {
	return &houseCache{client: client}
}

func (c *houseCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key)
}

func (c *houseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.SetEx(ctx, key, value, ttl)
}

func (c *houseCache) GetField(ctx context.Context, key, field string) ([]byte, error) {
	return c.client.HGet(ctx, key, field)
}

func (c *houseCache) SetField(ctx context.Context, key, field string, value []byte, ttl time.Duration) error {
	return c.client.HSetEx(ctx, key, field, value, ttl)
}

// InvalidateHouse drops the cached detail record of a house. Listing pages are left to expire.
func (c *houseCache) InvalidateHouse(ctx context.Context, houseID int64) error {
	return c.client.Delete(ctx, cache.HouseInfoKey(houseID))
}
