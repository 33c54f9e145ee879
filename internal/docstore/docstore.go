package docstore

import "context"

// Document names. Each document is the sole source of truth for its domain
// and is fully rewritten on every mutation.
const (
	DocItems           = "items"
	DocActivity        = "activity"
	DocInventory       = "inventory"
	DocUserBalance     = "user-balance"
	DocUserStats       = "user-stats"
	DocReferrals       = "referrals"
	DocPaymentRequests = "payment-requests"
)

// Names lists every known document, in the order backup jobs copy them.
var Names = []string{
	DocItems,
	DocActivity,
	DocInventory,
	DocUserBalance,
	DocUserStats,
	DocReferrals,
	DocPaymentRequests,
}

// Store is a durable mapping from document name to a JSON blob.
type Store interface {
	// Get retrieves a document by name. Returns (nil, nil) when the
	// document does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put fully overwrites a document.
	Put(ctx context.Context, name string, data []byte) error

	// Close closes the underlying storage.
	Close() error
}

// Quarantiner is implemented by backends that can set a corrupted document
// aside for forensic recovery before an empty default replaces it.
type Quarantiner interface {
	Quarantine(name string) error
}
