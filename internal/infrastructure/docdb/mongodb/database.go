// Package mongodb provides MongoDB database implementation.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unifiedui/document-service/internal/core/docdb"
	"github.com/unifiedui/document-service/internal/domain/models"
)

// Database implements docdb.Database over a single MongoDB collection.
// The collection also serves as the all view, ordered by _id.
type Database struct {
	collection *mongo.Collection
}

// NewDatabase creates a new MongoDB database wrapper.
func NewDatabase(collection *mongo.Collection) *Database {
	return &Database{
		collection: collection,
	}
}

// Get retrieves a document by ID.
func (d *Database) Get(ctx context.Context, id string) (models.RawRecord, error) {
	var doc bson.M
	err := d.collection.FindOne(ctx, idsFilter([]string{id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return toRecord(doc), nil
}

// FetchMany retrieves the documents matching ids, in request order.
func (d *Database) FetchMany(ctx context.Context, ids []string) ([]models.RawRecord, error) {
	if len(ids) == 0 {
		return []models.RawRecord{}, nil
	}

	cursor, err := d.collection.Find(ctx, idsFilter(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	records := make([]models.RawRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, toRecord(doc))
	}
	return orderByIDs(records, ids), nil
}

// All returns the view over the whole collection.
func (d *Database) All() docdb.View {
	return d
}

// Count counts all documents in the collection.
func (d *Database) Count(ctx context.Context) (int64, error) {
	count, err := d.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// First returns the document with the smallest _id.
func (d *Database) First(ctx context.Context) (models.RawRecord, error) {
	return d.edge(ctx, 1)
}

// Last returns the document with the largest _id.
func (d *Database) Last(ctx context.Context) (models.RawRecord, error) {
	return d.edge(ctx, -1)
}

func (d *Database) edge(ctx context.Context, order int) (models.RawRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: order}})

	var doc bson.M
	err := d.collection.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read edge document: %w", err)
	}
	return toRecord(doc), nil
}

// idsFilter matches every document whose _id is one of ids. An id that is a
// valid ObjectID hex string also matches that ObjectID.
func idsFilter(ids []string) bson.M {
	values := make(bson.A, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			values = append(values, oid)
		}
	}
	return bson.M{"_id": bson.M{"$in": values}}
}

// toRecord converts a decoded document into a raw record.
// ObjectID identifiers are rendered as hex strings.
func toRecord(doc bson.M) models.RawRecord {
	record := models.RawRecord(doc)
	if oid, ok := record[models.IDKey].(primitive.ObjectID); ok {
		record[models.IDKey] = oid.Hex()
	}
	return record
}

// orderByIDs reorders records into the order of ids. $in does not preserve
// request order. Each record is emitted once, at the first position its id was requested.
func orderByIDs(records []models.RawRecord, ids []string) []models.RawRecord {
	byID := make(map[string]models.RawRecord, len(records))
	for _, record := range records {
		byID[record.ID()] = record
	}

	ordered := make([]models.RawRecord, 0, len(records))
	for _, id := range ids {
		record, ok := byID[id]
		if !ok {
			continue
		}
		ordered = append(ordered, record)
		delete(byID, id)
	}
	return ordered
}

var (
	_ docdb.Database = (*Database)(nil)
	_ docdb.View     = (*Database)(nil)
	_ docdb.ViewSet  = (*Database)(nil)
)
