package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and checks connectivity
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewFromRedis wraps an existing redis client
func NewFromRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}

// Remember records the id produced for an idempotency key
func (c *Client) Remember(ctx context.Context, scope, key, id string, ttl time.Duration) error {
	return c.rdb.Set(ctx, idempotencyKey(scope, key), id, ttl).Err()
}

// Lookup returns the id recorded for an idempotency key, or "" when the
// key is unknown or expired.
func (c *Client) Lookup(ctx context.Context, scope, key string) (string, error) {
	id, err := c.rdb.Get(ctx, idempotencyKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup failed: %w", err)
	}
	return id, nil
}
