package aggregates

import (
	"sort"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/randx"
)

// Budget noise band: budgets are rarely accurate, so realized revenue is
// scrambled by an independent uniform factor per (shop, month).
const (
	budgetNoiseMin = 0.95
	budgetNoiseMax = 1.05
)

// budgetKey groups realized revenue per (shop, month, currency).
type budgetKey struct {
	shopID   string
	month    time.Time
	currency string
}

// MonthlyBudgets aggregates realized gross revenue per (shop, month,
// currency) and applies planning noise. Gross means returned lines count;
// budget is compared against gross revenue downstream. Output rows are
// sorted by shop then month so equal inputs yield identical row order.
func MonthlyBudgets(src *randx.Source, orders []*domain.Order, lines []*domain.LineItem) []domain.BudgetRow {
	if len(orders) == 0 || len(lines) == 0 {
		return nil
	}

	orderByID := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		orderByID[o.OrderID] = o
	}

	revenue := make(map[budgetKey]float64)
	for _, l := range lines {
		o, ok := orderByID[l.OrderID]
		if !ok {
			// Orphan line: the caller concatenated mismatched batches. Skip
			// rather than invent a shop for it.
			continue
		}
		key := budgetKey{
			shopID:   o.ShopID,
			month:    firstOfMonth(o.OrderDate),
			currency: o.CurrencyCode,
		}
		revenue[key] += l.UnitPricePaid * float64(l.Qty)
	}

	keys := make([]budgetKey, 0, len(revenue))
	for k := range revenue {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].shopID != keys[j].shopID {
			return keys[i].shopID < keys[j].shopID
		}
		return keys[i].month.Before(keys[j].month)
	})

	rows := make([]domain.BudgetRow, 0, len(keys))
	for _, k := range keys {
		noise := src.Uniform(budgetNoiseMin, budgetNoiseMax)
		rows = append(rows, domain.BudgetRow{
			Month:         k.month,
			ShopID:        k.shopID,
			Currency:      k.currency,
			BudgetRevenue: round2(revenue[k] * noise),
		})
	}
	return rows
}

// firstOfMonth truncates a date to the first of its month, midnight UTC.
func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
