package domain

import "time"

// BudgetRow represents the monthly revenue budget for one shop. Budget is
// gross: realized revenue including later-returned lines, with planning noise
// applied. Corresponds to raw_budget table.
type BudgetRow struct {
	Month         time.Time // first-of-month date, midnight UTC
	ShopID        string
	Currency      string
	BudgetRevenue float64 // 2 dp
}
