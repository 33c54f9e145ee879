package store

import (
	"context"
	"encoding/json"
	"sync"

	"metagift-api/internal/docstore"
	"metagift-api/internal/model"
	"metagift-api/internal/pricing"
)

// Catalog is the durable ordered collection of sellable items.
type Catalog struct {
	docs docstore.Store
	mu   sync.Mutex
}

// NewCatalog creates a catalog store over the given document store.
func NewCatalog(docs docstore.Store) *Catalog {
	return &Catalog{docs: docs}
}

func (c *Catalog) items(ctx context.Context) []model.Item {
	var items []model.Item
	if !readDoc(ctx, c.docs, docstore.DocItems, &items) {
		return nil
	}
	return items
}

// withPrices fills the derived price table when the stored item has none.
func withPrices(item model.Item) model.Item {
	if item.Prices == nil {
		item.Prices = pricing.Defaults(item.Price)
	}
	return item
}

// List returns every catalog item in stored order, with price tables
// derived lazily for items that never had one persisted.
func (c *Catalog) List(ctx context.Context) []model.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items(ctx)
	out := make([]model.Item, len(items))
	for i, item := range items {
		out[i] = withPrices(item)
	}
	return out
}

// GetByID returns a single item, or ErrNotFound.
func (c *Catalog) GetByID(ctx context.Context, id int) (*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items(ctx) {
		if item.ID == id {
			item = withPrices(item)
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

// Insert adds a new item, assigning id = max(existing ids) + 1, or 1 for
// an empty catalog. Returns the stored item.
func (c *Catalog) Insert(ctx context.Context, item model.Item) model.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items(ctx)
	maxID := 0
	for _, existing := range items {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	item.ID = maxID + 1

	items = append(items, item)
	writeDoc(ctx, c.docs, docstore.DocItems, items)
	return item
}

// Update merges the supplied fields into an existing item; fields absent
// from the patch keep their stored value.
func (c *Catalog) Update(ctx context.Context, id int, patch map[string]json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items(ctx)
	for i, item := range items {
		if item.ID != id {
			continue
		}

		merged, err := mergeItem(item, patch)
		if err != nil {
			return err
		}
		merged.ID = id
		items[i] = merged
		writeDoc(ctx, c.docs, docstore.DocItems, items)
		return nil
	}
	return ErrNotFound
}

func mergeItem(item model.Item, patch map[string]json.RawMessage) (model.Item, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return item, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return item, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	data, err = json.Marshal(fields)
	if err != nil {
		return item, err
	}
	var merged model.Item
	if err := json.Unmarshal(data, &merged); err != nil {
		return item, err
	}
	return merged, nil
}

// Remove deletes an item from the catalog.
func (c *Catalog) Remove(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items(ctx)
	for i, item := range items {
		if item.ID == id {
			items = append(items[:i], items[i+1:]...)
			writeDoc(ctx, c.docs, docstore.DocItems, items)
			return nil
		}
	}
	return ErrNotFound
}

// DecrementStock takes one unit off an item's stock. The item is removed
// from the catalog entirely when stock reaches zero, so catalog entries
// always have stock > 0 while present.
func (c *Catalog) DecrementStock(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items(ctx)
	for i, item := range items {
		if item.ID != id {
			continue
		}
		item.Stock--
		if item.Stock <= 0 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i] = item
		}
		writeDoc(ctx, c.docs, docstore.DocItems, items)
		return nil
	}
	return ErrNotFound
}
