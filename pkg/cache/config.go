// Package cache provides the Redis side channel used to accelerate listing and detail reads.
package cache

import (
	"fmt"
	"time"

	"ihome-rentals/pkg/config"
)

// configuration settings for connecting to a Redis instance.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	TLSEnabled   bool
	TLSCertFile  string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures uint32
	// BreakerOpenTimeout is how long the breaker stays open before probing Redis again.
	BreakerOpenTimeout time.Duration
}

// build the Redis configuration from the application config.
func LoadRedisConfig(cfg *config.Config) (*RedisConfig, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Redis.Host == "" {
		return nil, fmt.Errorf("REDIS_HOST is required")
	}
	if cfg.Redis.Port <= 0 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	return &RedisConfig{
		Host:               cfg.Redis.Host,
		Port:               cfg.Redis.Port,
		Password:           cfg.Redis.Password,
		DB:                 cfg.Redis.DB,
		TLSEnabled:         cfg.Redis.TLSEnabled,
		TLSCertFile:        cfg.Redis.TLSCertFile,
		PoolSize:           10,
		MinIdleConns:       5,
		DialTimeout:        5 * time.Second,
		ReadTimeout:        3 * time.Second,
		WriteTimeout:       3 * time.Second,
		BreakerFailures:    5,
		BreakerOpenTimeout: 30 * time.Second,
	}, nil
}
