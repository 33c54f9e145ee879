package docstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metagift-api/internal/docstore"
)

func TestFileStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	fs, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	// Absent document is not an error.
	data, err := fs.Get(ctx, docstore.DocItems)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, fs.Put(ctx, docstore.DocItems, []byte(`[{"id":1}]`)))

	data, err = fs.Get(ctx, docstore.DocItems)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	fs, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Put(ctx, docstore.DocUserBalance, []byte(`{"1":{"stars":10}}`)))
	require.NoError(t, fs.Put(ctx, docstore.DocUserBalance, []byte(`{"1":{"stars":5}}`)))

	data, err := fs.Get(ctx, docstore.DocUserBalance)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"stars":5}}`, string(data))
}

func TestFileStoreQuarantine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := docstore.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Put(ctx, docstore.DocInventory, []byte(`{not json`)))
	require.NoError(t, fs.Quarantine(docstore.DocInventory))

	backups, err := filepath.Glob(filepath.Join(dir, "inventory.json.backup.*"))
	require.NoError(t, err)
	require.Len(t, backups, 1)

	// The corrupted bytes are preserved for recovery.
	preserved, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(preserved))
}
