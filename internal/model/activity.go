package model

// ActivityRecord is one completed transaction in the activity feed.
// BuyerNumber is the ordinal position of the purchase among all purchases
// of the same item, computed from the full log at write time.
type ActivityRecord struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"`
	ConvertedPrice float64 `json:"convertedPrice"`
	Prices         *Prices `json:"prices"`
	PaymentMethod  string  `json:"paymentMethod,omitempty"`
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	BuyerNumber    int     `json:"buyerNumber"`
}
