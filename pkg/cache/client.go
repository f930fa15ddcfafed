package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"ihome-rentals/pkg/config"
	"ihome-rentals/pkg/logger"
	"ihome-rentals/pkg/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
)

var RedisClient *redis.Client

// Client wraps a Redis connection pool with a circuit breaker. Every call is
// timed and counted; misses never count as breaker failures.
type Client struct {
	rdb     *redis.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient wraps an existing Redis client.
func NewClient(rdb *redis.Client, failures uint32, openTimeout time.Duration) *Client {
	if failures == 0 {
		failures = 5
	}
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "redis",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.GlobalLogger.Warnf("circuit breaker %s changed from %s to %s", name, from, to)
			metrics.RedisBreakerState.Set(float64(to))
		},
	})
	return &Client{rdb: rdb, breaker: breaker}
}

// initialize the global Redis client with the provided configuration and return a wrapped Client.
func InitRedis(appCfg *config.Config) (*Client, error) {
	cfg, err := LoadRedisConfig(appCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load Redis config: %v", err)
	}

	var tlsConfig *tls.Config
	if cfg.TLSEnabled {
		if cfg.TLSCertFile != "" {
			cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSCertFile)
			if err != nil {
				logger.GlobalLogger.Errorf("failed to load TLS certificate: %v", err)
				return nil, fmt.Errorf("failed to load TLS certificate: %v", err)
			}
			tlsConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
			}
		} else {
			tlsConfig = &tls.Config{}
		}
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		TLSConfig:    tlsConfig,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxRetries:   -1,
	})

	client := NewClient(RedisClient, cfg.BreakerFailures, cfg.BreakerOpenTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// the cache is optional; a failed ping is reported but the client stays usable
	if err := client.Ping(ctx); err != nil {
		logger.GlobalLogger.Warnf("Redis unreachable at startup, serving from the store: %v", err)
		return client, nil
	}

	logger.GlobalLogger.Println("Redis connected successfully")
	return client, nil
}

// close the Redis client connection.
func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.GlobalLogger.Errorf("error closing Redis: %v", err)
		} else {
			logger.GlobalLogger.Println("Redis connection closed")
		}
	}
}

// missResult marks a redis.Nil reply so it passes through the breaker as a success.
type missResult struct{}

// run executes fn through the breaker and records duration and error metrics under operation.
func (c *Client) run(operation, key string, fn func() (interface{}, error)) (interface{}, error) {
	start := time.Now()
	res, err := c.breaker.Execute(func() (interface{}, error) {
		v, err := fn()
		if err == redis.Nil {
			return missResult{}, nil
		}
		return v, err
	})
	metrics.RedisOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues(operation).Inc()
		return nil, NewCacheError(operation, key, err)
	}
	if _, ok := res.(missResult); ok {
		return nil, ErrCacheMiss
	}
	return res, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.run("ping", "", func() (interface{}, error) {
		return c.rdb.Ping(ctx).Result()
	})
	return err
}

// State reports the breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}
