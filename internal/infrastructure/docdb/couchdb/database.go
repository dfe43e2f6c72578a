// Package couchdb provides the CouchDB database implementation.
package couchdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/unifiedui/document-service/internal/core/docdb"
	"github.com/unifiedui/document-service/internal/domain/models"
)

// Database implements docdb.Database and docdb.View for a CouchDB database.
type Database struct {
	client  *Client
	allView string
}

// Get retrieves a document by ID.
func (d *Database) Get(ctx context.Context, id string) (models.RawRecord, error) {
	status, body, err := d.client.do(ctx, http.MethodGet, docPath(id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	switch status {
	case http.StatusOK:
		return decodeRecord(body)
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to get document: %w", responseError(status, body))
	}
}

// FetchMany retrieves documents through _all_docs with include_docs.
// Rows for missing or deleted documents are skipped; CouchDB answers in key order.
func (d *Database) FetchMany(ctx context.Context, ids []string) ([]models.RawRecord, error) {
	if len(ids) == 0 {
		return []models.RawRecord{}, nil
	}

	query := url.Values{"include_docs": {"true"}}
	payload := map[string][]string{"keys": ids}

	status, body, err := d.client.do(ctx, http.MethodPost, allDocsPath, query, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch documents: %w", responseError(status, body))
	}

	return decodeRows(body, false)
}

// All returns the view enumerating all documents.
func (d *Database) All() docdb.View {
	return d
}

// Count returns total_rows of the all view, excluding design documents for _all_docs.
func (d *Database) Count(ctx context.Context) (int64, error) {
	body, err := d.queryView(ctx, url.Values{"limit": {"0"}})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	total := gjson.GetBytes(body, "total_rows").Int()

	if d.allView != "" {
		return total, nil
	}
	design, err := d.designCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return total - design, nil
}

// First returns the first document of the all view.
func (d *Database) First(ctx context.Context) (models.RawRecord, error) {
	return d.edge(ctx, false)
}

// Last returns the last document of the all view.
func (d *Database) Last(ctx context.Context) (models.RawRecord, error) {
	return d.edge(ctx, true)
}

func (d *Database) edge(ctx context.Context, descending bool) (models.RawRecord, error) {
	limit := int64(1)
	if d.allView == "" {
		// Design documents share the _all_docs key space; read past them.
		design, err := d.designCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read edge document: %w", err)
		}
		limit += design
	}

	query := url.Values{
		"limit":        {strconv.FormatInt(limit, 10)},
		"include_docs": {"true"},
	}
	if descending {
		query.Set("descending", "true")
	}

	body, err := d.queryView(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read edge document: %w", err)
	}

	records, err := decodeRows(body, d.allView == "")
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (d *Database) queryView(ctx context.Context, query url.Values) ([]byte, error) {
	path := allDocsPath
	if d.allView != "" {
		path = d.allView
		query.Set("reduce", "false")
	}

	status, body, err := d.client.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, responseError(status, body)
	}
	return body, nil
}

// designCount counts the design documents in _all_docs.
func (d *Database) designCount(ctx context.Context) (int64, error) {
	query := url.Values{
		"startkey": {strconv.Quote(models.DesignDocPrefix)},
		"endkey":   {strconv.Quote("_design0")},
	}
	status, body, err := d.client.do(ctx, http.MethodGet, allDocsPath, query, nil)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, responseError(status, body)
	}
	return int64(len(gjson.GetBytes(body, "rows").Array())), nil
}

// docPath escapes a document id for use in a URL path. The slash of a
// design document id is kept.
func docPath(id string) string {
	if strings.HasPrefix(id, models.DesignDocPrefix) {
		return models.DesignDocPrefix + url.PathEscape(strings.TrimPrefix(id, models.DesignDocPrefix))
	}
	return url.PathEscape(id)
}

func decodeRecord(raw []byte) (models.RawRecord, error) {
	var record models.RawRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return record, nil
}

// decodeRows extracts the included documents of a view response.
func decodeRows(body []byte, skipDesign bool) ([]models.RawRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid couchdb response")
	}

	rows := gjson.GetBytes(body, "rows").Array()
	records := make([]models.RawRecord, 0, len(rows))
	for _, row := range rows {
		if row.Get("error").Exists() || row.Get("value.deleted").Bool() {
			continue
		}
		if skipDesign && strings.HasPrefix(row.Get("id").String(), models.DesignDocPrefix) {
			continue
		}
		doc := row.Get("doc")
		if !doc.IsObject() {
			continue
		}
		record, err := decodeRecord([]byte(doc.Raw))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

var (
	_ docdb.Database = (*Database)(nil)
	_ docdb.View     = (*Database)(nil)
	_ docdb.ViewSet  = (*Database)(nil)
)
