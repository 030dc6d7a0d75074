package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps Redis operations for the advisory cache.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Key helpers
func cacheKey(scope, key string) string {
	return fmt.Sprintf("advisory:cache:%s:%s", scope, key)
}

// GetCached returns a cached payload for scope/key.
// The second return is false when no entry exists.
func (c *Client) GetCached(ctx context.Context, scope, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKey(scope, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get failed: %w", err)
	}
	return val, true, nil
}

// SetCached stores a payload for scope/key with a TTL.
func (c *Client) SetCached(
	ctx context.Context,
	scope, key string,
	payload []byte,
	ttl time.Duration,
) error {
	if err := c.rdb.Set(ctx, cacheKey(scope, key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}

// DeleteCached removes a cached payload.
func (c *Client) DeleteCached(ctx context.Context, scope, key string) error {
	return c.rdb.Del(ctx, cacheKey(scope, key)).Err()
}
