package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/document-service/internal/domain/models"
	"github.com/unifiedui/document-service/internal/infrastructure/docdb/memory"
)

func TestDatabase_PutAndGet(t *testing.T) {
	db := memory.NewDatabase()
	ctx := context.Background()

	require.NoError(t, db.Put("doc1", models.RawRecord{"title": "hello"}))

	record, err := db.Get(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, "doc1", record.ID())
	assert.Equal(t, "hello", record["title"])

	missing, err := db.Get(ctx, "doc2")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDatabase_PutRequiresID(t *testing.T) {
	db := memory.NewDatabase()
	assert.Error(t, db.Put("", models.RawRecord{}))
}

func TestDatabase_ReturnedRecordsAreCopies(t *testing.T) {
	db := memory.NewDatabase()
	ctx := context.Background()
	require.NoError(t, db.Put("doc1", models.RawRecord{"n": 1}))

	record, err := db.Get(ctx, "doc1")
	require.NoError(t, err)
	record["n"] = 2

	again, err := db.Get(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, 1, again["n"])
}

func TestDatabase_FetchManySkipsMissingAndKeepsRequestOrder(t *testing.T) {
	db := memory.NewDatabase()
	ctx := context.Background()
	require.NoError(t, db.Put("a", models.RawRecord{}))
	require.NoError(t, db.Put("b", models.RawRecord{}))

	records, err := db.FetchMany(ctx, []string{"b", "x", "a"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID())
	assert.Equal(t, "a", records[1].ID())

	records, err = db.FetchMany(ctx, []string{"x"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDatabase_AllView(t *testing.T) {
	db := memory.NewDatabase()
	ctx := context.Background()
	view := db.All()

	first, err := view.First(ctx)
	require.NoError(t, err)
	assert.Nil(t, first)

	for _, id := range []string{"m", "c", "x"} {
		require.NoError(t, db.Put(id, models.RawRecord{}))
	}

	count, err := view.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	first, err = view.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", first.ID())

	last, err := view.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", last.ID())
}

func TestDatabase_Delete(t *testing.T) {
	db := memory.NewDatabase()
	require.NoError(t, db.Put("a", models.RawRecord{}))

	assert.True(t, db.Delete("a"))
	assert.False(t, db.Delete("a"))

	count, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDatabase_Load(t *testing.T) {
	db := memory.NewDatabase()

	err := db.Load(strings.NewReader(`{"a":{"x":1},"b":{"x":2}}`))
	require.NoError(t, err)

	record, err := db.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, float64(2), record["x"])

	assert.Error(t, db.Load(strings.NewReader(`not json`)))
}

func TestClient_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":{"x":1}}`), 0o600))

	client, err := memory.NewClient(&memory.ClientConfig{SeedFile: path})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))

	count, err := client.Views().All().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, client.Close(ctx))

	_, err = memory.NewClient(&memory.ClientConfig{SeedFile: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}

func TestDatabase_CanceledContext(t *testing.T) {
	db := memory.NewDatabase()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDatabase_ConcurrentAccess(t *testing.T) {
	db := memory.NewDatabase()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			assert.NoError(t, db.Put(id, models.RawRecord{}))
			_, err := db.FetchMany(ctx, []string{id})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), count)
}
