package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metagift-api/internal/docstore"
	"metagift-api/internal/service"
)

func TestBackupRunSnapshotsDocuments(t *testing.T) {
	ctx := context.Background()
	docs, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, docs.Put(ctx, docstore.DocItems, []byte(`[{"id":1}]`)))
	require.NoError(t, docs.Put(ctx, docstore.DocUserBalance, []byte(`{"1001":{"stars":50}}`)))

	backupDir := t.TempDir()
	service.NewBackup(docs, backupDir, time.Hour).Run()

	dirs, err := filepath.Glob(filepath.Join(backupDir, "backup_*"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	data, err := os.ReadFile(filepath.Join(dirs[0], "items.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))

	// Empty documents are skipped, not written as empty files.
	_, err = os.Stat(filepath.Join(dirs[0], "activity.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestBackupPrunesExpiredDirectories(t *testing.T) {
	docs, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	backupDir := t.TempDir()
	stale := filepath.Join(backupDir, "backup_20200101_000000")
	require.NoError(t, os.MkdirAll(stale, 0o755))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	service.NewBackup(docs, backupDir, 24*time.Hour).Run()

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}
