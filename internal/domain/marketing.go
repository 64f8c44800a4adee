package domain

import "time"

// MarketingSpend represents planned daily marketing spend for one shop.
// Derived from expected revenue, not actuals. Corresponds to
// raw_marketing_daily table.
type MarketingSpend struct {
	Date        time.Time // spend date, midnight UTC
	ShopID      string
	SpendAmount float64 // 2 dp
	Currency    string
}
