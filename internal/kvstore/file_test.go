package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) Store {
	t.Helper()

	store, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestFileStore_SetAndGet(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[{"id":1,"quantity":2}]`)))

	data, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"quantity":2}]`, string(data))
}

func TestFileStore_GetMissingKey(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Get(context.Background(), KeyWhatsAppNumber)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_SetOverwrites(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyWhatsAppNumber, []byte(`"5511999999999"`)))
	require.NoError(t, store.Set(ctx, KeyWhatsAppNumber, []byte(`"5511888888888"`)))

	data, err := store.Get(ctx, KeyWhatsAppNumber)
	require.NoError(t, err)
	assert.Equal(t, `"5511888888888"`, string(data))
}

func TestFileStore_Delete(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyDemoUser, []byte(`{"email":"a@b.c"}`)))
	require.NoError(t, store.Delete(ctx, KeyDemoUser))

	_, err := store.Get(ctx, KeyDemoUser)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, KeyDemoUser))
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), KeyCart, []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotEqual(t, ".tmp", filepath.Ext(entry.Name()))
	}
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
