package service

import "errors"

// Precondition failures surfaced to the HTTP layer. Handlers translate
// them into the localized messages the frontend displays.
var (
	// ErrItemUnavailable means the item is unknown or sold out.
	ErrItemUnavailable = errors.New("item unavailable or sold out")

	// ErrInsufficientBalance means the buyer's Stars balance does not
	// cover the price.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrMissingTransferData means required transfer fields are absent.
	ErrMissingTransferData = errors.New("missing transfer data")

	// ErrInvalidRecipient means the recipient id is not a positive integer.
	ErrInvalidRecipient = errors.New("invalid recipient id")

	// ErrSelfTransfer means sender and recipient are the same user.
	ErrSelfTransfer = errors.New("cannot transfer to self")

	// ErrInventoryItemNotFound means the named record is not in the
	// sender's inventory.
	ErrInventoryItemNotFound = errors.New("item not found in inventory")
)
