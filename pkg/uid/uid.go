package uid

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// New generates a new unique identifier.
func New() string {
	return uuid.New().String()
}

// NewInventoryID generates an identifier for an inventory unit: millisecond
// timestamp plus a random disambiguator, so two purchases within the same
// millisecond still get distinct ids.
func NewInventoryID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// NewRequestID generates a time-based identifier for a payment request.
func NewRequestID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
