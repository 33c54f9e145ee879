package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metagift-api/internal/docstore"
	"metagift-api/internal/model"
	"metagift-api/internal/store"
)

func newDocs(t *testing.T) *docstore.FileStore {
	t.Helper()
	docs, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return docs
}

func TestCatalogInsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(newDocs(t))

	first := catalog.Insert(ctx, model.Item{Name: "Gift", Price: 5, Stock: 3})
	assert.Equal(t, 1, first.ID)

	second := catalog.Insert(ctx, model.Item{Name: "Rare gift", Price: 10, Stock: 1})
	assert.Equal(t, 2, second.ID)

	items := catalog.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "Gift", items[0].Name)
}

func TestCatalogListDerivesPrices(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(newDocs(t))

	catalog.Insert(ctx, model.Item{Name: "Gift", Price: 5, Stock: 1})

	items := catalog.List(ctx)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Prices)
	assert.Equal(t, 500, items[0].Prices.STARS)
	assert.Equal(t, 1500, items[0].Prices.RUB)
}

func TestCatalogUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(newDocs(t))

	item := catalog.Insert(ctx, model.Item{Name: "Gift", Price: 5, Stock: 3, Tag: "new"})

	patch := map[string]json.RawMessage{"price": json.RawMessage(`7`)}
	require.NoError(t, catalog.Update(ctx, item.ID, patch))

	updated, err := catalog.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, updated.Price)
	// Fields absent from the patch keep their stored values.
	assert.Equal(t, "Gift", updated.Name)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, "new", updated.Tag)

	assert.ErrorIs(t, catalog.Update(ctx, 99, patch), store.ErrNotFound)
}

func TestCatalogDecrementStockDelistsAtZero(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(newDocs(t))

	item := catalog.Insert(ctx, model.Item{Name: "Gift", Price: 5, Stock: 2})

	require.NoError(t, catalog.DecrementStock(ctx, item.ID))
	remaining, err := catalog.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining.Stock)

	require.NoError(t, catalog.DecrementStock(ctx, item.ID))
	_, err = catalog.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, catalog.List(ctx))
}

func TestCatalogRemove(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(newDocs(t))

	item := catalog.Insert(ctx, model.Item{Name: "Gift", Price: 5, Stock: 1})
	require.NoError(t, catalog.Remove(ctx, item.ID))
	assert.Empty(t, catalog.List(ctx))

	assert.ErrorIs(t, catalog.Remove(ctx, item.ID), store.ErrNotFound)
}

func TestCatalogCorruptDocumentQuarantined(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	docs, err := docstore.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte(`{{{`), 0o644))

	catalog := store.NewCatalog(docs)
	assert.Empty(t, catalog.List(ctx))

	// The corrupted bytes were set aside for recovery.
	backups, err := filepath.Glob(filepath.Join(dir, "items.json.backup.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
