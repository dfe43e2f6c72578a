package documents

import (
	"reflect"

	"github.com/unifiedui/document-service/internal/core/docdb"
)

// CallOption customizes a single accessor call.
type CallOption func(*callOptions)

type callOptions struct {
	database docdb.Database
}

// WithDatabase runs the call against db instead of the accessor's default database.
// A nil db, including a typed nil pointer, leaves the default in place.
func WithDatabase(db docdb.Database) CallOption {
	return func(o *callOptions) {
		if !isNil(db) {
			o.database = db
		}
	}
}

// isNil reports whether v is nil or an interface value holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
