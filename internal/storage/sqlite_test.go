package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillworks/till/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "till.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	saved := []model.Transaction{testSale("TX-2", 200), testSale("TX-1", 100)}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSQLiteStore_EmptyDatabaseLoadsEmpty(t *testing.T) {
	store := newTestSQLiteStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestSQLiteStore_SaveReplacesWholeLedger(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Save(ctx, []model.Transaction{testSale("TX-1", 100), testSale("TX-2", 200)}))
	require.NoError(t, store.Save(ctx, []model.Transaction{testSale("TX-3", 300)}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "TX-3", loaded[0].ID)
}

func TestSQLiteStore_PreservesOrderAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "till.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	saved := []model.Transaction{testSale("TX-3", 300), testSale("TX-2", 200), testSale("TX-1", 100)}
	require.NoError(t, store.Save(ctx, saved))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "TX-3", loaded[0].ID)
	assert.Equal(t, "TX-1", loaded[2].ID)
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	require.Error(t, err)
}
