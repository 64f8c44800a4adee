package domain

import "time"

// Order represents one simulated order arrival. Write-once, no cancellation
// state. Corresponds to raw_orders table.
type Order struct {
	OrderID      string    // unique order identifier (12 hex chars)
	CustomerID   string    // reference into the customer pool
	ShopID       string    // shop the order was placed in
	OrderDate    time.Time // date only, midnight UTC
	CurrencyCode string    // shop currency, e.g. EUR or CHF
}
