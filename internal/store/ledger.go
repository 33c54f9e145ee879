package store

import (
	"context"
	"strconv"
	"sync"

	"metagift-api/internal/docstore"
	"metagift-api/internal/model"
)

// Ledger is the durable mapping from user id to Stars balance. The store
// itself offers only read and full-overwrite; check-then-debit atomicity
// is the transaction engine's responsibility.
type Ledger struct {
	docs docstore.Store
	mu   sync.Mutex
}

// NewLedger creates a ledger store over the given document store.
func NewLedger(docs docstore.Store) *Ledger {
	return &Ledger{docs: docs}
}

func (l *Ledger) entries(ctx context.Context) map[string]model.Balance {
	entries := make(map[string]model.Balance)
	if !readDoc(ctx, l.docs, docstore.DocUserBalance, &entries) {
		return make(map[string]model.Balance)
	}
	return entries
}

// Balance returns the user's Stars balance, 0 for unknown users.
func (l *Ledger) Balance(ctx context.Context, userID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.entries(ctx)[strconv.FormatInt(userID, 10)].Stars
}

// SetBalance fully overwrites the user's ledger entry.
func (l *Ledger) SetBalance(ctx context.Context, userID int64, stars int, username string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.entries(ctx)
	entries[strconv.FormatInt(userID, 10)] = model.Balance{Stars: stars, Username: username}
	writeDoc(ctx, l.docs, docstore.DocUserBalance, entries)
}
