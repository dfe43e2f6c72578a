// Package memory provides an in-process document database ordered by document id.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tidwall/btree"

	"github.com/unifiedui/document-service/internal/core/docdb"
	"github.com/unifiedui/document-service/internal/domain/models"
)

type entry struct {
	id     string
	record models.RawRecord
}

func byID(a, b interface{}) bool {
	return a.(*entry).id < b.(*entry).id
}

// Database implements docdb.Database and docdb.View over a B-tree keyed by id.
type Database struct {
	mu   sync.RWMutex
	docs *btree.BTree
}

// NewDatabase creates an empty in-memory database.
func NewDatabase() *Database {
	return &Database{
		docs: btree.NewNonConcurrent(byID),
	}
}

// Put stores a copy of record under id, replacing any previous record.
// The id is written to the record's _id key.
func (d *Database) Put(id string, record models.RawRecord) error {
	if id == "" {
		return fmt.Errorf("document ID is required")
	}

	stored := clone(record)
	stored[models.IDKey] = id

	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs.Set(&entry{id: id, record: stored})
	return nil
}

// Delete removes the record stored under id.
func (d *Database) Delete(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := &entry{id: id}
	if d.docs.Get(key) == nil {
		return false
	}
	d.docs.Delete(key)
	return true
}

// Load reads a JSON object mapping ids to records and stores every record.
func (d *Database) Load(r io.Reader) error {
	var seed map[string]models.RawRecord
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode seed documents: %w", err)
	}
	for id, record := range seed {
		if err := d.Put(id, record); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads seed documents from a JSON file.
func (d *Database) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return d.Load(f)
}

// Get retrieves a record by ID.
func (d *Database) Get(ctx context.Context, id string) (models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	item := d.docs.Get(&entry{id: id})
	if item == nil {
		return nil, nil
	}
	return clone(item.(*entry).record), nil
}

// FetchMany retrieves the records that exist for ids, in request order.
func (d *Database) FetchMany(ctx context.Context, ids []string) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	records := make([]models.RawRecord, 0, len(ids))
	for _, id := range ids {
		item := d.docs.Get(&entry{id: id})
		if item == nil {
			continue
		}
		records = append(records, clone(item.(*entry).record))
	}
	return records, nil
}

// Count returns the number of stored records.
func (d *Database) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	return int64(d.docs.Len()), nil
}

// First returns the record with the smallest id.
func (d *Database) First(ctx context.Context) (models.RawRecord, error) {
	return d.edge(ctx, false)
}

// Last returns the record with the largest id.
func (d *Database) Last(ctx context.Context) (models.RawRecord, error) {
	return d.edge(ctx, true)
}

func (d *Database) edge(ctx context.Context, descending bool) (models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var found models.RawRecord
	take := func(item interface{}) bool {
		found = clone(item.(*entry).record)
		return false
	}
	if descending {
		d.docs.Descend(nil, take)
	} else {
		d.docs.Ascend(nil, take)
	}
	return found, nil
}

// All returns the database itself, which enumerates every record by id.
func (d *Database) All() docdb.View {
	return d
}

func clone(record models.RawRecord) models.RawRecord {
	out := make(models.RawRecord, len(record)+1)
	for k, v := range record {
		out[k] = v
	}
	return out
}

var (
	_ docdb.Database = (*Database)(nil)
	_ docdb.View     = (*Database)(nil)
	_ docdb.ViewSet  = (*Database)(nil)
)
