// Package models provides the domain models of the document service.
package models

import (
	"fmt"
	"math"
	"strconv"
)

// Reserved keys of a raw record.
const (
	IDKey           = "_id"
	AltIDKey        = "id"
	RevisionKey     = "_rev"
	DesignDocPrefix = "_design/"
)

// RawRecord is the untyped key-value payload returned by a document database
// before it is mapped into a typed document.
type RawRecord map[string]any

// ID returns the document identifier carried by the record.
// Integer identifiers are rendered in base 10.
func (r RawRecord) ID() string {
	for _, key := range []string{IDKey, AltIDKey} {
		if id := stringify(r[key]); id != "" {
			return id
		}
	}
	return ""
}

// Rev returns the revision of the record, if the database tracks one.
func (r RawRecord) Rev() string {
	return stringify(r[RevisionKey])
}

func stringify(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case int:
		return strconv.Itoa(id)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		if id >= math.MinInt64 && id < math.MaxInt64 && id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprintf("%v", id)
	}
}
