package cache

import (
	"context"
	"fmt"
	"time"
)

// fetch the raw value stored at key. Returns ErrCacheMiss when absent.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := c.run("get", key, func() (interface{}, error) {
		return c.rdb.Get(ctx, key).Bytes()
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

// store value at key with the given expiry.
func (c *Client) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return NewCacheError("setex", key, fmt.Errorf("ttl must be positive, got %s", ttl))
	}
	_, err := c.run("setex", key, func() (interface{}, error) {
		return c.rdb.Set(ctx, key, value, ttl).Result()
	})
	return err
}

// fetch one field of the hash at key. Returns ErrCacheMiss when the hash or the field is absent.
func (c *Client) HGet(ctx context.Context, key, field string) ([]byte, error) {
	res, err := c.run("hget", key, func() (interface{}, error) {
		return c.rdb.HGet(ctx, key, field).Bytes()
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

// store one hash field and (re)set the expiry of the whole hash atomically.
// The TTL is rounded up to whole seconds.
func (c *Client) HSetEx(ctx context.Context, key, field string, value []byte, ttl time.Duration) error {
	seconds := int64((ttl + time.Second - 1) / time.Second)
	if seconds <= 0 {
		return NewCacheError("hsetex", key, fmt.Errorf("ttl must be positive, got %s", ttl))
	}
	_, err := c.run("hsetex", key, func() (interface{}, error) {
		return setHashFieldWithTTLScript.Run(ctx, c.rdb, []string{key}, field, value, seconds).Result()
	})
	return err
}

// remove keys. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.run("delete", keys[0], func() (interface{}, error) {
		return c.rdb.Del(ctx, keys...).Result()
	})
	return err
}

// report the remaining expiry of key.
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	res, err := c.run("ttl", key, func() (interface{}, error) {
		return c.rdb.TTL(ctx, key).Result()
	})
	if err != nil {
		return 0, err
	}
	return res.(time.Duration), nil
}
