// Package redis provides the Redis document database implementation.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/unifiedui/document-service/internal/core/docdb"
	"github.com/unifiedui/document-service/internal/domain/models"
)

// Database implements docdb.Database over Redis.
// Each document is a JSON string at <prefix>:doc:<id>; the sorted set
// <prefix>:ids (all scores 0) orders the ids lexicographically for the all view.
type Database struct {
	client *redis.Client
	prefix string
}

// NewDatabase creates a new Redis document database.
func NewDatabase(client *redis.Client, prefix string) *Database {
	return &Database{
		client: client,
		prefix: prefix,
	}
}

// DocKey returns the key holding the document with the given id.
func (d *Database) DocKey(id string) string {
	return d.prefix + ":doc:" + id
}

// IndexKey returns the key of the sorted set of document ids.
func (d *Database) IndexKey() string {
	return d.prefix + ":ids"
}

// Get retrieves a document by ID.
func (d *Database) Get(ctx context.Context, id string) (models.RawRecord, error) {
	val, err := d.client.Get(ctx, d.DocKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", d.DocKey(id), err)
	}
	return decode(id, val)
}

// FetchMany retrieves documents with a single MGET, in request order.
func (d *Database) FetchMany(ctx context.Context, ids []string) ([]models.RawRecord, error) {
	if len(ids) == 0 {
		return []models.RawRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = d.DocKey(id)
	}

	values, err := d.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	records := make([]models.RawRecord, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		record, err := decode(ids[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// All returns the view over the id index.
func (d *Database) All() docdb.View {
	return d
}

// Count returns the number of indexed documents.
func (d *Database) Count(ctx context.Context) (int64, error) {
	count, err := d.client.ZCard(ctx, d.IndexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// First returns the document with the smallest indexed id.
func (d *Database) First(ctx context.Context) (models.RawRecord, error) {
	return d.at(ctx, 0)
}

// Last returns the document with the largest indexed id.
func (d *Database) Last(ctx context.Context) (models.RawRecord, error) {
	return d.at(ctx, -1)
}

func (d *Database) at(ctx context.Context, rank int64) (models.RawRecord, error) {
	ids, err := d.client.ZRange(ctx, d.IndexKey(), rank, rank).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s: %w", d.IndexKey(), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return d.Get(ctx, ids[0])
}

// decode parses a stored document and makes sure it carries its id.
func decode(id string, raw []byte) (models.RawRecord, error) {
	var record models.RawRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	if record == nil {
		record = models.RawRecord{}
	}
	if record.ID() == "" {
		record[models.IDKey] = id
	}
	return record, nil
}

var (
	_ docdb.Database = (*Database)(nil)
	_ docdb.View     = (*Database)(nil)
	_ docdb.ViewSet  = (*Database)(nil)
)
