package store

import (
	"context"
	"strconv"
	"sync"

	"metagift-api/internal/docstore"
)

// Referrals maps a referrer to the set of users they brought in. The link
// is recorded once per referred user.
type Referrals struct {
	docs docstore.Store
	mu   sync.Mutex
}

// NewReferrals creates a referral store over the given document store.
func NewReferrals(docs docstore.Store) *Referrals {
	return &Referrals{docs: docs}
}

func (r *Referrals) links(ctx context.Context) map[string][]int64 {
	links := make(map[string][]int64)
	if !readDoc(ctx, r.docs, docstore.DocReferrals, &links) {
		return make(map[string][]int64)
	}
	return links
}

// Record stores the referrer → user link. Returns true when the link is
// new, false when it was already recorded.
func (r *Referrals) Record(ctx context.Context, referrerID, userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strconv.FormatInt(referrerID, 10)
	links := r.links(ctx)
	for _, existing := range links[key] {
		if existing == userID {
			return false
		}
	}
	links[key] = append(links[key], userID)
	writeDoc(ctx, r.docs, docstore.DocReferrals, links)
	return true
}
