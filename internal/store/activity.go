package store

import (
	"context"
	"sync"
	"time"

	"metagift-api/internal/docstore"
	"metagift-api/internal/model"
)

// DisplayLimit caps how many activity records a read returns. The stored
// log is unbounded; only the view is capped.
const DisplayLimit = 100

// Activity is the append-only log of completed transactions, newest first.
type Activity struct {
	docs docstore.Store
	mu   sync.Mutex
}

// NewActivity creates an activity store over the given document store.
func NewActivity(docs docstore.Store) *Activity {
	return &Activity{docs: docs}
}

func (a *Activity) records(ctx context.Context) []model.ActivityRecord {
	var records []model.ActivityRecord
	if !readDoc(ctx, a.docs, docstore.DocActivity, &records) {
		return nil
	}
	return records
}

// Append prepends a record, stamping the localized date and time.
func (a *Activity) Append(ctx context.Context, rec model.ActivityRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	rec.Date = now.Format("02.01.2006")
	rec.Time = now.Format("15:04")

	records := append([]model.ActivityRecord{rec}, a.records(ctx)...)
	writeDoc(ctx, a.docs, docstore.DocActivity, records)
}

// List returns the most recent records, capped at DisplayLimit.
func (a *Activity) List(ctx context.Context, limit int) []model.ActivityRecord {
	if limit <= 0 || limit > DisplayLimit {
		limit = DisplayLimit
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	records := a.records(ctx)
	if len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		records = []model.ActivityRecord{}
	}
	return records
}

// CountByItem counts purchases of an item across the full stored log, not
// the capped view, so buyer numbers stay correct beyond DisplayLimit.
func (a *Activity) CountByItem(ctx context.Context, itemID int) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := 0
	for _, rec := range a.records(ctx) {
		if rec.ID == itemID {
			count++
		}
	}
	return count
}
