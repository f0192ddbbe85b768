package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis client.
type Client struct {
	inner *redis.Client
}

// New creates a Redis client from url. No connection is made until the
// first command.
func New(url string) (*Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Client{inner: redis.NewClient(opt)}, nil
}

// Redis returns the underlying redis client.
func (c *Client) Redis() *redis.Client {
	return c.inner
}

// Name identifies the dependency in readiness reports.
func (c *Client) Name() string {
	return "redis"
}

// Check pings the server.
func (c *Client) Check(ctx context.Context) error {
	if err := c.inner.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.inner.Close()
}
