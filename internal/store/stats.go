package store

import (
	"context"
	"strconv"
	"sync"

	"metagift-api/internal/docstore"
	"metagift-api/internal/model"
)

// Stats tracks per-user purchase counters.
type Stats struct {
	docs docstore.Store
	mu   sync.Mutex
}

// NewStats creates a stats store over the given document store.
func NewStats(docs docstore.Store) *Stats {
	return &Stats{docs: docs}
}

func (s *Stats) entries(ctx context.Context) map[string]model.UserStats {
	entries := make(map[string]model.UserStats)
	if !readDoc(ctx, s.docs, docstore.DocUserStats, &entries) {
		return make(map[string]model.UserStats)
	}
	return entries
}

// Get returns the user's stats, zero counters for unknown users.
func (s *Stats) Get(ctx context.Context, userID int64) model.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries(ctx)[strconv.FormatInt(userID, 10)]
}

// RecordPurchase bumps the purchase counters after a completed transaction.
func (s *Stats) RecordPurchase(ctx context.Context, userID int64, username string, spentStars int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strconv.FormatInt(userID, 10)
	entries := s.entries(ctx)
	stats := entries[key]
	stats.TotalPurchases++
	stats.TotalSpent += spentStars
	stats.Username = username
	entries[key] = stats
	writeDoc(ctx, s.docs, docstore.DocUserStats, entries)
}

// RecordReferral bumps the referrer's referral counter.
func (s *Stats) RecordReferral(ctx context.Context, referrerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strconv.FormatInt(referrerID, 10)
	entries := s.entries(ctx)
	stats := entries[key]
	stats.ReferralCount++
	entries[key] = stats
	writeDoc(ctx, s.docs, docstore.DocUserStats, entries)
}
