// Package reporting builds a markdown run summary from stored records.
package reporting

import "time"

// Report represents the run summary structure.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	Seed        int64
	StartDate   time.Time
	HorizonDays int

	// Row counts per table
	Counts RowCounts

	// Per-shop order and revenue breakdown, sorted by shop ID
	ShopSummaries []ShopSummaryRow

	// Categories by gross revenue, descending
	CategorySummaries []CategorySummaryRow
}

// RowCounts holds the stored row count per table.
type RowCounts struct {
	Products  int
	Customers int
	Orders    int
	LineItems int
	Marketing int
	Budget    int
}

// ShopSummaryRow summarizes one shop's activity over the whole run.
type ShopSummaryRow struct {
	ShopID        string
	Currency      string
	Orders        int
	LineItems     int
	GrossRevenue  float64 // qty x unit_price_paid, returned lines included
	ReturnedLines int
	MarketingSum  float64
}

// CategorySummaryRow summarizes one product category.
type CategorySummaryRow struct {
	Category     string
	LineItems    int
	GrossRevenue float64
}
