package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// Meta carries the run parameters echoed at the top of the report.
type Meta struct {
	Seed        int64
	StartDate   time.Time
	HorizonDays int
}

// Generator produces run summaries from stored data.
type Generator struct {
	productStore   storage.ProductStore
	customerStore  storage.CustomerStore
	orderStore     storage.OrderStore
	lineItemStore  storage.LineItemStore
	marketingStore storage.MarketingStore
	budgetStore    storage.BudgetStore
	meta           Meta
	now            func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	productStore storage.ProductStore,
	customerStore storage.CustomerStore,
	orderStore storage.OrderStore,
	lineItemStore storage.LineItemStore,
	marketingStore storage.MarketingStore,
	budgetStore storage.BudgetStore,
	meta Meta,
) *Generator {
	return &Generator{
		productStore:   productStore,
		customerStore:  customerStore,
		orderStore:     orderStore,
		lineItemStore:  lineItemStore,
		marketingStore: marketingStore,
		budgetStore:    budgetStore,
		meta:           meta,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete run summary.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	products, err := g.productStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := g.orderStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := g.lineItemStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	marketing, err := g.marketingStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	customerCount, err := g.customerStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	budgetCount, err := g.budgetStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt: g.now(),
		Seed:        g.meta.Seed,
		StartDate:   g.meta.StartDate,
		HorizonDays: g.meta.HorizonDays,
		Counts: RowCounts{
			Products:  len(products),
			Customers: customerCount,
			Orders:    len(orders),
			LineItems: len(lines),
			Marketing: len(marketing),
			Budget:    budgetCount,
		},
		ShopSummaries:     buildShopSummaries(orders, lines, marketing),
		CategorySummaries: buildCategorySummaries(products, lines),
	}, nil
}

// buildShopSummaries groups orders, line items and marketing spend by shop.
func buildShopSummaries(orders []*domain.Order, lines []*domain.LineItem, marketing []*domain.MarketingSpend) []ShopSummaryRow {
	orderShop := make(map[string]string, len(orders))
	summaries := make(map[string]*ShopSummaryRow)

	shop := func(id, currency string) *ShopSummaryRow {
		s, ok := summaries[id]
		if !ok {
			s = &ShopSummaryRow{ShopID: id, Currency: currency}
			summaries[id] = s
		}
		if s.Currency == "" {
			s.Currency = currency
		}
		return s
	}

	for _, o := range orders {
		orderShop[o.OrderID] = o.ShopID
		shop(o.ShopID, o.CurrencyCode).Orders++
	}

	for _, l := range lines {
		shopID, ok := orderShop[l.OrderID]
		if !ok {
			// Orphan line, skip rather than invent a shop.
			continue
		}
		s := shop(shopID, "")
		s.LineItems++
		s.GrossRevenue += float64(l.Qty) * l.UnitPricePaid
		if l.IsReturned {
			s.ReturnedLines++
		}
	}

	for _, m := range marketing {
		shop(m.ShopID, m.Currency).MarketingSum += m.SpendAmount
	}

	rows := make([]ShopSummaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, *s)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ShopID < rows[j].ShopID })
	return rows
}

// buildCategorySummaries joins line items to products and ranks categories
// by gross revenue descending.
func buildCategorySummaries(products []*domain.Product, lines []*domain.LineItem) []CategorySummaryRow {
	categoryBySKU := make(map[int64]string, len(products))
	for _, p := range products {
		categoryBySKU[p.SKU] = p.Category.String()
	}

	summaries := make(map[string]*CategorySummaryRow)
	for _, l := range lines {
		category, ok := categoryBySKU[l.SKU]
		if !ok {
			continue
		}
		s, ok := summaries[category]
		if !ok {
			s = &CategorySummaryRow{Category: category}
			summaries[category] = s
		}
		s.LineItems++
		s.GrossRevenue += float64(l.Qty) * l.UnitPricePaid
	}

	rows := make([]CategorySummaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, *s)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GrossRevenue != rows[j].GrossRevenue {
			return rows[i].GrossRevenue > rows[j].GrossRevenue
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
