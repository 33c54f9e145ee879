package service

import (
	"context"
	"encoding/json"

	"metagift-api/internal/cache"
	"metagift-api/internal/model"
	"metagift-api/internal/store"
)

// CatalogService fronts the catalog store with an optional read cache.
// Every mutation invalidates the cached listing; the document store stays
// the source of truth.
type CatalogService struct {
	store *store.Catalog
	cache *cache.Catalog
}

// NewCatalogService creates a catalog service. cache may be nil.
func NewCatalogService(catalogStore *store.Catalog, catalogCache *cache.Catalog) *CatalogService {
	return &CatalogService{store: catalogStore, cache: catalogCache}
}

// List returns the catalog, served from cache when possible.
func (s *CatalogService) List(ctx context.Context) []model.Item {
	if items, ok := s.cache.Get(ctx); ok {
		return items
	}

	items := s.store.List(ctx)
	s.cache.Set(ctx, items)
	return items
}

// GetByID returns a single item, or store.ErrNotFound.
func (s *CatalogService) GetByID(ctx context.Context, id int) (*model.Item, error) {
	return s.store.GetByID(ctx, id)
}

// Insert adds a new item and returns it with its assigned id.
func (s *CatalogService) Insert(ctx context.Context, item model.Item) model.Item {
	stored := s.store.Insert(ctx, item)
	s.cache.Invalidate(ctx)
	return stored
}

// Update merges the supplied fields into an existing item.
func (s *CatalogService) Update(ctx context.Context, id int, patch map[string]json.RawMessage) error {
	if err := s.store.Update(ctx, id, patch); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Remove deletes an item from the catalog.
func (s *CatalogService) Remove(ctx context.Context, id int) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// DecrementStock takes one unit off an item's stock, delisting it at zero.
func (s *CatalogService) DecrementStock(ctx context.Context, id int) error {
	if err := s.store.DecrementStock(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
