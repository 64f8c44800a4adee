package domain

// Product represents one catalog entry. Immutable once generated.
// Corresponds to raw_products table.
type Product struct {
	SKU             int64    // unique SKU, sequential from 10000
	Category        Category // fixed category enum
	AvgPriceEUR     float64  // catalog price, clamped to configured range, 2 dp
	ReturnProb      float64  // per-category return probability in [0,1]
	PopularityScore float64  // heavy-tailed sampling weight, Pareto-distributed
	UnitCostEUR     float64  // 40-60% of AvgPriceEUR, 2 dp
	Name            string   // display name, "<category> Model <i>"
}
