package model

// Payment request lifecycle. Approved and rejected are terminal: a request
// never leaves a terminal state, which closes the double-approval gap.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Request subtypes.
const (
	RequestTypePurchase = "purchase"
	RequestTypeTopUp    = "stars_topup"
)

// PaymentRequest is a caller-declared off-platform payment awaiting admin
// confirmation. Price fields are a snapshot recorded when the request was
// filed; approval uses them instead of re-reading the catalog.
type PaymentRequest struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	ItemID         int     `json:"itemId,omitempty"`
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	Price          float64 `json:"price,omitempty"`
	ConvertedPrice float64 `json:"convertedPrice,omitempty"`
	Amount         int     `json:"amount,omitempty"`
	PaymentMethod  string  `json:"paymentMethod,omitempty"`
	ItemName       string  `json:"itemName,omitempty"`
	ItemImage      string  `json:"itemImage,omitempty"`
	ReferrerID     int64   `json:"referrerId,omitempty"`
	Status         string  `json:"status"`
	Date           string  `json:"date"`
}
