package model

// InventoryRecord is one owned unit of a purchased item. Item fields are a
// snapshot taken at purchase time, not a live reference into the catalog.
// Ownership moves by delete + recreate under a fresh InventoryID, never by
// mutating UserID in place.
type InventoryRecord struct {
	InventoryID    string  `json:"inventoryId"`
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"`
	ConvertedPrice float64 `json:"convertedPrice"`
	Prices         *Prices `json:"prices"`
	Quantity       string  `json:"quantity"`
	Owner          string  `json:"owner"`
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	Status         string  `json:"status"`
	Comment        string  `json:"comment,omitempty"`
	TransferDate   string  `json:"transferDate,omitempty"`
	FromUsername   string  `json:"fromUsername,omitempty"`
	OriginalOwner  string  `json:"originalOwner,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}
