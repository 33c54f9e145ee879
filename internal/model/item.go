package model

// Prices holds an item's price in every supported currency. TON is the
// canonical unit; STARS and RUB are derived from it when absent.
type Prices struct {
	TON   float64 `json:"TON"`
	STARS int     `json:"STARS"`
	RUB   int     `json:"RUB"`
}

// Item is a sellable catalog entry. An item with zero stock is removed
// from the catalog, so listed items always have stock > 0.
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Prices      *Prices `json:"prices"`
	Quantity    string  `json:"quantity"`
	Stock       int     `json:"stock"`
	Tag         string  `json:"tag"`
	TagColor    string  `json:"tagColor"`
	Status      string  `json:"status"`
	StatusColor string  `json:"statusColor"`
}
