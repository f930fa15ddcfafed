package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ihome-rentals/internal/repositories"
	"ihome-rentals/pkg/cache"
	"ihome-rentals/pkg/logger"
	"ihome-rentals/pkg/metrics"
)

// ComputeFunc builds a value from the store on a cache miss.
type ComputeFunc func(ctx context.Context) (interface{}, error)

// Cacheable is implemented by values that may decline to be written back.
type Cacheable interface {
	Cacheable() bool
}

// CacheAside serves serialized projections from Redis and falls back to the
// store on a miss or on any cache failure. Cache errors never reach the caller.
type CacheAside struct {
	cache repositories.HouseCache
}

// NewCacheAside returns a coordinator over c. A nil cache sends every read to the store.
func NewCacheAside(c repositories.HouseCache) *CacheAside {
	return &CacheAside{cache: c}
}

type lookup struct {
	entry string
	key   string
	field string
	ttl   time.Duration
}

// GetOrCompute returns the bytes cached at key, or computes, caches and returns them.
func (c *CacheAside) GetOrCompute(ctx context.Context, entry, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	return c.fetch(ctx, lookup{entry: entry, key: key, ttl: ttl}, compute)
}

// GetOrComputeField is GetOrCompute for one field of a hash. The write sets the
// field and the hash expiry atomically.
func (c *CacheAside) GetOrComputeField(ctx context.Context, entry, key, field string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	return c.fetch(ctx, lookup{entry: entry, key: key, field: field, ttl: ttl}, compute)
}

// Refresh recomputes the value at key and overwrites the cached copy.
func (c *CacheAside) Refresh(ctx context.Context, entry, key string, ttl time.Duration, compute ComputeFunc) error {
	l := lookup{entry: entry, key: key, ttl: ttl}
	data, value, err := c.compute(ctx, l, compute)
	if err != nil {
		return err
	}
	if c.cache == nil || !shouldCache(value) {
		return nil
	}
	return c.cache.Set(ctx, key, data, ttl)
}

func (c *CacheAside) fetch(ctx context.Context, l lookup, compute ComputeFunc) ([]byte, error) {
	if data, ok := c.read(ctx, l); ok {
		metrics.CacheHitsTotal.WithLabelValues(l.entry).Inc()
		logger.GlobalLogger.Debugf("cache hit: key=%s field=%s", l.key, l.field)
		return data, nil
	}
	metrics.CacheMissesTotal.WithLabelValues(l.entry).Inc()

	data, value, err := c.compute(ctx, l, compute)
	if err != nil {
		return nil, err
	}
	if shouldCache(value) {
		c.write(ctx, l, data)
	}
	return data, nil
}

func (c *CacheAside) compute(ctx context.Context, l lookup, compute ComputeFunc) ([]byte, interface{}, error) {
	value, err := compute(ctx)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize %s: %w", l.entry, err)
	}
	return data, value, nil
}

func shouldCache(value interface{}) bool {
	if v, ok := value.(Cacheable); ok {
		return v.Cacheable()
	}
	return true
}

func (c *CacheAside) read(ctx context.Context, l lookup) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	var data []byte
	var err error
	if l.field == "" {
		data, err = c.cache.Get(ctx, l.key)
	} else {
		data, err = c.cache.GetField(ctx, l.key, l.field)
	}
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.GlobalLogger.Warnf("cache read failed, falling through to store: key=%s field=%s err=%v", l.key, l.field, err)
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (c *CacheAside) write(ctx context.Context, l lookup, data []byte) {
	if c.cache == nil {
		return
	}
	var err error
	if l.field == "" {
		err = c.cache.Set(ctx, l.key, data, l.ttl)
	} else {
		err = c.cache.SetField(ctx, l.key, l.field, data, l.ttl)
	}
	if err != nil {
		logger.GlobalLogger.Warnf("cache write failed: key=%s field=%s err=%v", l.key, l.field, err)
	}
}
