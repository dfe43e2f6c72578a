// Package docdb defines the document database interfaces.
package docdb

import (
	"context"

	"github.com/unifiedui/document-service/internal/domain/models"
)

// Database defines the key-based lookups of a document database.
type Database interface {
	// Get retrieves a single record by its identifier.
	// Returns nil (and no error) if the record does not exist.
	Get(ctx context.Context, id string) (models.RawRecord, error)

	// FetchMany retrieves the records stored under the given identifiers.
	// Only the records that exist are returned; missing identifiers are skipped.
	FetchMany(ctx context.Context, ids []string) ([]models.RawRecord, error)
}

// View is a precomputed enumeration of documents.
type View interface {
	// Count returns the number of records in the view.
	Count(ctx context.Context) (int64, error)

	// First returns the first record of the view, or nil if the view is empty.
	First(ctx context.Context) (models.RawRecord, error)

	// Last returns the last record of the view, or nil if the view is empty.
	Last(ctx context.Context) (models.RawRecord, error)
}

// ViewSet groups the views defined for a document type.
type ViewSet interface {
	// All returns the view enumerating every document.
	All() View
}
