package store

import (
	"context"
	"sync"
	"time"

	"metagift-api/internal/docstore"
	"metagift-api/internal/model"
	"metagift-api/pkg/uid"
)

// Default display values for inventory records with missing fields.
const (
	defaultItemStatus = "Редкий"
	defaultQuantity   = "x1"
)

// Inventory is the durable collection of owned-item records, partitioned
// by the holding user. Transfer is not a store primitive: the transaction
// engine implements it as Remove + Append.
type Inventory struct {
	docs docstore.Store
	mu   sync.Mutex
}

// NewInventory creates an inventory store over the given document store.
func NewInventory(docs docstore.Store) *Inventory {
	return &Inventory{docs: docs}
}

func (s *Inventory) records(ctx context.Context) []model.InventoryRecord {
	var records []model.InventoryRecord
	if !readDoc(ctx, s.docs, docstore.DocInventory, &records) {
		return nil
	}
	return records
}

// ListByOwner returns the records currently held by userID. A non-positive
// user id yields an empty result, not an error.
func (s *Inventory) ListByOwner(ctx context.Context, userID int64) []model.InventoryRecord {
	if userID <= 0 {
		return []model.InventoryRecord{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make([]model.InventoryRecord, 0)
	for _, rec := range s.records(ctx) {
		if rec.UserID == userID {
			owned = append(owned, rec)
		}
	}
	return owned
}

// Append stores a new record, assigning its InventoryID and filling
// display defaults. Returns the stored record.
func (s *Inventory) Append(ctx context.Context, rec model.InventoryRecord) model.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.InventoryID = uid.NewInventoryID()
	if rec.ConvertedPrice == 0 {
		rec.ConvertedPrice = rec.Price
	}
	if rec.Status == "" {
		rec.Status = defaultItemStatus
	}
	if rec.Quantity == "" {
		rec.Quantity = defaultQuantity
	}
	rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	records := append(s.records(ctx), rec)
	writeDoc(ctx, s.docs, docstore.DocInventory, records)
	return rec
}

// Remove deletes the record identified by inventoryID, but only when it is
// held by userID. A mismatched owner makes the call a silent no-op: a user
// cannot remove another's record even by guessing the id.
func (s *Inventory) Remove(ctx context.Context, inventoryID string, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records(ctx)
	kept := records[:0]
	for _, rec := range records {
		if rec.InventoryID == inventoryID && rec.UserID == userID {
			continue
		}
		kept = append(kept, rec)
	}
	writeDoc(ctx, s.docs, docstore.DocInventory, kept)
}
