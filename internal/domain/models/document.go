package models

import (
	"fmt"
)

// Document is the typed view of a stored record.
type Document struct {
	ID     string         `json:"id"`
	Rev    string         `json:"rev,omitempty"`
	Fields map[string]any `json:"fields"`
}

// BuildDocument maps a raw database record into a Document.
// Reserved keys (_id, id, _rev) are lifted out of Fields.
func BuildDocument(record RawRecord) (*Document, error) {
	if record == nil {
		return nil, fmt.Errorf("cannot build document from nil record")
	}

	id := record.ID()
	if id == "" {
		return nil, fmt.Errorf("record has no identifier")
	}

	fields := make(map[string]any, len(record))
	for key, value := range record {
		switch key {
		case IDKey, AltIDKey, RevisionKey:
			continue
		}
		fields[key] = value
	}

	return &Document{
		ID:     id,
		Rev:    record.Rev(),
		Fields: fields,
	}, nil
}
