// Package pricing is the single place that knows the currency table.
// Every flow that needs a converted amount goes through it.
package pricing

import (
	"math"

	"metagift-api/internal/model"
)

// Fixed conversion rates. TON is the canonical unit.
const (
	TONToStars    = 100
	TONToRubles   = 300
	StarsToRubles = 3
)

// Defaults derives the full price table from the canonical TON price.
func Defaults(price float64) *model.Prices {
	return &model.Prices{
		TON:   price,
		STARS: int(math.Ceil(price * TONToStars)),
		RUB:   int(math.Ceil(price * TONToRubles)),
	}
}

// SpentStars converts a purchase into the Stars amount recorded in user
// stats: the converted price when the caller supplied one, otherwise the
// canonical price at the fixed Stars rate.
func SpentStars(price, convertedPrice float64) int {
	if convertedPrice > 0 {
		return int(math.Ceil(convertedPrice))
	}
	return int(math.Ceil(price * TONToStars))
}

// Method is a payment option offered for an item, with the price already
// converted into the method's currency.
type Method struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Icon    string  `json:"icon"`
	Price   float64 `json:"price"`
	Wallet  string  `json:"wallet,omitempty"`
	Contact string  `json:"contact,omitempty"`
}

const (
	starsIcon    = "https://i.postimg.cc/3N3f5zhH/IMG-1243.png"
	yoomoneyIcon = "https://thumb.tildacdn.com/tild6365-6562-4437-a465-306531386233/-/format/webp/4.png"
	tonIcon      = "https://ton.org/download/ton_symbol.png"

	supportContact = "@MetaGift_support"
	yoomoneyWallet = "4100118542839036"
	tonWallet      = "UQDy5hhPvhwcNY9g-lP-nkjdmx4rAVZGFEnhOKzdF-JcIiDW"
)

// ShopWalletLabel is the owner placeholder stamped on inventory records
// created by an approved off-platform payment.
const ShopWalletLabel = "UQDy...liDW"

// MethodsForItem lists the payment options available for an item, one per
// currency with a positive converted price.
func MethodsForItem(item *model.Item) []Method {
	prices := item.Prices
	if prices == nil {
		prices = Defaults(item.Price)
	}

	methods := make([]Method, 0, 3)
	if prices.STARS > 0 {
		methods = append(methods, Method{
			ID:      "STARS",
			Name:    "Telegram Stars",
			Icon:    starsIcon,
			Price:   float64(prices.STARS),
			Contact: supportContact,
		})
	}
	if prices.RUB > 0 {
		methods = append(methods, Method{
			ID:     "YOOMONEY",
			Name:   "ЮMoney (₽)",
			Icon:   yoomoneyIcon,
			Price:  float64(prices.RUB),
			Wallet: yoomoneyWallet,
		})
	}
	if prices.TON > 0 {
		methods = append(methods, Method{
			ID:     "TON",
			Name:   "TON Wallet",
			Icon:   tonIcon,
			Price:  prices.TON,
			Wallet: tonWallet,
		})
	}
	return methods
}
