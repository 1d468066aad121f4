package settings

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitd-test.db")
	store, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreGetMissingKey(t *testing.T) {
	store := setupStore(t)
	_, err := store.Get(context.Background(), "activities")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreSetThenGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "activities", []byte(`[{"id":"a"}]`)))
	got, err := store.Get(ctx, "activities")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"a"}]`), got)

	// Overwrite replaces the value under the same key.
	require.NoError(t, store.Set(ctx, "activities", []byte(`[]`)))
	got, err = store.Get(ctx, "activities")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), got)
}

func TestMigrateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateUp(db))
	require.NoError(t, MigrateDown(db))
	require.NoError(t, MigrateUp(db))

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	require.NoError(t, store.Set(t.Context(), "k", []byte("v")))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}
