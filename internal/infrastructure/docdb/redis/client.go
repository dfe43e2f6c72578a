// Package redis provides a document database stored as JSON values in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unifiedui/document-service/internal/core/docdb"
)

const (
	// DefaultKeyPrefix namespaces the keys of the document store.
	DefaultKeyPrefix = "documents"

	connectTimeout = 5 * time.Second
)

// Config holds Redis connection configuration.
type Config struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// Client implements the docdb.Client interface for Redis.
type Client struct {
	client   *redis.Client
	database *Database
}

// NewClient creates a new Redis document database client.
func NewClient(cfg Config) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &Client{
		client:   client,
		database: NewDatabase(client, prefix),
	}, nil
}

// Database returns the database interface.
func (c *Client) Database() docdb.Database {
	return c.database
}

// Views returns the view set.
func (c *Client) Views() docdb.ViewSet {
	return c.database
}

// Ping checks if the Redis connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing purposes).
func (c *Client) GetClient() *redis.Client {
	return c.client
}
