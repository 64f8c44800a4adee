package domain

// LineItem represents one product position within an order. An order owns
// 1..N line items; SKUs are distinct within one order. Write-once.
// Corresponds to raw_line_items table.
type LineItem struct {
	LineID        string  // unique line identifier (12 hex chars)
	OrderID       string  // owning order
	SKU           int64   // product reference
	Qty           int     // fixed at 1 in this model
	UnitPricePaid float64 // catalog price, possibly with markdown applied, 2 dp
	UnitCost      float64 // copied from catalog at generation time
	IsReturned    bool    // independent Bernoulli draw per line
}
