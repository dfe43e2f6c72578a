package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unifiedui/document-service/internal/domain/models"
	"github.com/unifiedui/document-service/internal/infrastructure/docdb/memory"
)

// Test document ids.
const (
	TestDocumentA = "a"
	TestDocumentB = "b"
	TestMissingID = "c"
)

// NewTestRecords returns the two records used across tests: a (x=1) and b (x=2).
func NewTestRecords() map[string]models.RawRecord {
	return map[string]models.RawRecord{
		TestDocumentA: {"x": float64(1)},
		TestDocumentB: {"x": float64(2)},
	}
}

// NewSeededDatabase returns an in-memory database loaded with NewTestRecords.
func NewSeededDatabase(t *testing.T) *memory.Database {
	t.Helper()
	db := memory.NewDatabase()
	for id, record := range NewTestRecords() {
		require.NoError(t, db.Put(id, record))
	}
	return db
}
