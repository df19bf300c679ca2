package checkout

import "errors"

var (
	// ErrPurchaseNotFound is returned when no purchase record exists
	// for a visitor session.
	ErrPurchaseNotFound = errors.New("purchase record not found")

	// ErrOrderNotFound is returned when an order cannot be located.
	ErrOrderNotFound = errors.New("order not found")
)
