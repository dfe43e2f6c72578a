// Package documents provides convenience queries over a document model backed by a document database.
package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/document-service/internal/core/docdb"
	"github.com/unifiedui/document-service/internal/domain/errors"
	"github.com/unifiedui/document-service/internal/domain/models"
)

// Factory builds a model instance from a raw database record.
type Factory[T any] func(record models.RawRecord) (*T, error)

// Config holds the configuration for an Accessor.
// Database is the default database and may be nil when every call passes
// WithDatabase. Views backs Count, First and Last. Factory is required.
type Config[T any] struct {
	Database docdb.Database
	Views    docdb.ViewSet
	Factory  Factory[T]
	Logger   *zerolog.Logger
}

// Accessor exposes lookups of documents of model type T.
// It holds no mutable state and is safe for concurrent use when its collaborators are.
type Accessor[T any] struct {
	database docdb.Database
	views    docdb.ViewSet
	factory  Factory[T]
	logger   zerolog.Logger
}

// NewAccessor creates a new Accessor.
func NewAccessor[T any](cfg *Config[T]) (*Accessor[T], error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Factory == nil {
		return nil, fmt.Errorf("factory is required")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Accessor[T]{
		database: cfg.Database,
		views:    cfg.Views,
		factory:  cfg.Factory,
		logger:   logger.With().Str("component", "documents").Logger(),
	}, nil
}

// Count returns the number of documents enumerated by the all view.
func (a *Accessor[T]) Count(ctx context.Context) (int64, error) {
	view, err := a.allView()
	if err != nil {
		return 0, err
	}

	count, err := view.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// First returns the first document of the all view, or nil if the view is empty.
func (a *Accessor[T]) First(ctx context.Context) (*T, error) {
	view, err := a.allView()
	if err != nil {
		return nil, err
	}

	record, err := view.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read first document: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return a.build(record)
}

// Last returns the last document of the all view, or nil if the view is empty.
func (a *Accessor[T]) Last(ctx context.Context) (*T, error) {
	view, err := a.allView()
	if err != nil {
		return nil, err
	}

	record, err := view.Last(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last document: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return a.build(record)
}

// GetStrict loads a document by id.
// A missing document is reported as a NOT_FOUND domain error.
func (a *Accessor[T]) GetStrict(ctx context.Context, id string, opts ...CallOption) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewInvalidArgumentError("document id is required", "")
	}

	db, err := a.resolve(opts)
	if err != nil {
		return nil, err
	}

	record, err := db.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	if record == nil {
		a.logger.Debug().Str("id", id).Msg("document not found")
		return nil, errors.NewDocumentNotFoundError(id)
	}

	return a.build(record)
}

// Get loads a document by id, returning nil if it does not exist.
// Validation and configuration errors are still returned.
func (a *Accessor[T]) Get(ctx context.Context, id string, opts ...CallOption) (*T, error) {
	doc, err := a.GetStrict(ctx, id, opts...)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return doc, err
}

// GetBulkStrict loads the documents stored under ids.
// Ids the database cannot resolve, blank ones included, are absent from the
// result; the order of the result is the order in which the database returns
// the records.
// If nothing resolves, a DOCUMENTS_NOT_FOUND domain error is returned.
func (a *Accessor[T]) GetBulkStrict(ctx context.Context, ids []string, opts ...CallOption) ([]*T, error) {
	db, err := a.resolve(opts)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, errors.NewDocumentsNotFoundError(ids)
	}

	records, err := db.FetchMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	if len(records) == 0 {
		a.logger.Debug().Strs("ids", ids).Msg("no documents found")
		return nil, errors.NewDocumentsNotFoundError(ids)
	}

	docs := make([]*T, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		doc, err := a.build(record)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, errors.NewDocumentsNotFoundError(ids)
	}
	return docs, nil
}

// GetBulk loads the documents stored under ids, returning an empty slice if none exist.
func (a *Accessor[T]) GetBulk(ctx context.Context, ids []string, opts ...CallOption) ([]*T, error) {
	docs, err := a.GetBulkStrict(ctx, ids, opts...)
	if errors.IsDocumentsNotFound(err) {
		return []*T{}, nil
	}
	return docs, err
}

// Find is an alias of Get.
func (a *Accessor[T]) Find(ctx context.Context, id string, opts ...CallOption) (*T, error) {
	return a.Get(ctx, id, opts...)
}

// FindStrict is an alias of GetStrict.
func (a *Accessor[T]) FindStrict(ctx context.Context, id string, opts ...CallOption) (*T, error) {
	return a.GetStrict(ctx, id, opts...)
}

// FindAll is an alias of GetBulk.
func (a *Accessor[T]) FindAll(ctx context.Context, ids []string, opts ...CallOption) ([]*T, error) {
	return a.GetBulk(ctx, ids, opts...)
}

// FindAllStrict is an alias of GetBulkStrict.
func (a *Accessor[T]) FindAllStrict(ctx context.Context, ids []string, opts ...CallOption) ([]*T, error) {
	return a.GetBulkStrict(ctx, ids, opts...)
}

func (a *Accessor[T]) resolve(opts []CallOption) (docdb.Database, error) {
	o := callOptions{database: a.database}
	for _, opt := range opts {
		opt(&o)
	}
	if isNil(o.database) {
		return nil, errors.NewDatabaseNotConfiguredError("no default database and none passed to the call")
	}
	return o.database, nil
}

func (a *Accessor[T]) allView() (docdb.View, error) {
	if isNil(a.views) {
		return nil, errors.NewDatabaseNotConfiguredError("no views configured")
	}
	view := a.views.All()
	if isNil(view) {
		return nil, errors.NewDatabaseNotConfiguredError("all view is not defined")
	}
	return view, nil
}

func (a *Accessor[T]) build(record models.RawRecord) (*T, error) {
	doc, err := a.factory(record)
	if err != nil {
		return nil, fmt.Errorf("failed to build document %s: %w", record.ID(), err)
	}
	return doc, nil
}
