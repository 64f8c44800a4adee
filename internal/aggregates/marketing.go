// Package aggregates derives the planning tables downstream of the order
// stream: daily marketing spend and monthly revenue budget.
package aggregates

import (
	"math"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/randx"
)

// Marketing spend model: roughly 15% of expected revenue, with planning
// noise. The proxy price is a configured constant, deliberately not
// reconciled against the actual catalog mean.
const (
	spendRevenueShare = 0.15
	spendNoiseStddev  = 0.10
)

// MarketingSpend derives one daily spend row for a shop from its expected
// order volume. Spend tracks expected revenue, not realized revenue.
func MarketingSpend(src *randx.Source, date time.Time, shop domain.ShopConfig, expectedVolume, avgPriceProxy float64) domain.MarketingSpend {
	expectedRevenue := expectedVolume * avgPriceProxy
	noise := src.NormalScaled(1.0, spendNoiseStddev)
	return domain.MarketingSpend{
		Date:        date,
		ShopID:      shop.ID,
		SpendAmount: round2(expectedRevenue * spendRevenueShare * noise),
		Currency:    shop.Currency,
	}
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
