// Package memory provides the in-memory document database client.
package memory

import (
	"context"

	"github.com/unifiedui/document-service/internal/core/docdb"
)

// Client implements the docdb.Client interface for the in-memory database.
type Client struct {
	database *Database
}

// ClientConfig holds in-memory database configuration.
type ClientConfig struct {
	// SeedFile optionally names a JSON file of documents to preload.
	SeedFile string
}

// NewClient creates a new in-memory client.
func NewClient(config *ClientConfig) (*Client, error) {
	db := NewDatabase()
	if config != nil && config.SeedFile != "" {
		if err := db.LoadFile(config.SeedFile); err != nil {
			return nil, err
		}
	}
	return &Client{database: db}, nil
}

// Database returns the database interface.
func (c *Client) Database() docdb.Database {
	return c.database
}

// Views returns the view set.
func (c *Client) Views() docdb.ViewSet {
	return c.database
}

// Store returns the concrete database for seeding.
func (c *Client) Store() *Database {
	return c.database
}

// Ping always succeeds.
func (c *Client) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (c *Client) Close(ctx context.Context) error {
	return nil
}
