package cache

import (
	"errors"
	"fmt"
)

// ErrCacheMiss is returned when a key or hash field is absent.
var ErrCacheMiss = errors.New("cache miss")

type CacheError struct {
	Operation string
	Key       string
	Err       error
}

func NewCacheError(operation, key string, err error) *CacheError {
	return &CacheError{
		Operation: operation,
		Key:       key,
		Err:       err,
	}
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache operation %s on %s failed: %v", e.Operation, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
