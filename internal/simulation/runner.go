// Package simulation orchestrates a full dataset generation run.
// It coordinates: catalog -> calendar -> order loop -> aggregates -> persistence
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/julianhilgemann/BI-Pipeline/internal/aggregates"
	"github.com/julianhilgemann/BI-Pipeline/internal/catalog"
	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/identity"
	"github.com/julianhilgemann/BI-Pipeline/internal/observability"
	"github.com/julianhilgemann/BI-Pipeline/internal/orders"
	"github.com/julianhilgemann/BI-Pipeline/internal/randx"
	"github.com/julianhilgemann/BI-Pipeline/internal/seasonality"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// Runner coordinates the generation pipeline.
// Flow: catalog -> calendar -> day x shop order loop -> budgets -> persistence
type Runner struct {
	// Stores
	productStore   storage.ProductStore
	customerStore  storage.CustomerStore
	orderStore     storage.OrderStore
	lineItemStore  storage.LineItemStore
	marketingStore storage.MarketingStore
	budgetStore    storage.BudgetStore

	// Engine
	config      domain.GenerationConfig
	seasonality *seasonality.Engine

	// Observability
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// Options for creating a Runner.
type Options struct {
	// Required stores
	ProductStore   storage.ProductStore
	CustomerStore  storage.CustomerStore
	OrderStore     storage.OrderStore
	LineItemStore  storage.LineItemStore
	MarketingStore storage.MarketingStore
	BudgetStore    storage.BudgetStore

	// Run configuration
	Config domain.GenerationConfig

	// Seasonality engine; defaults to seasonality.DefaultConfig when nil
	Seasonality *seasonality.Engine

	// Observability; Metrics may be nil
	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

// NewRunner creates a new Runner. The configuration is validated here so
// that a run never starts from an unsatisfiable setup.
func NewRunner(opts Options) (*Runner, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation config: %w", err)
	}

	engine := opts.Seasonality
	if engine == nil {
		engine = seasonality.NewEngine(seasonality.DefaultConfig())
	}

	return &Runner{
		productStore:   opts.ProductStore,
		customerStore:  opts.CustomerStore,
		orderStore:     opts.OrderStore,
		lineItemStore:  opts.LineItemStore,
		marketingStore: opts.MarketingStore,
		budgetStore:    opts.BudgetStore,
		config:         opts.Config,
		seasonality:    engine,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
	}, nil
}

// RunResult contains record counts from a completed run.
type RunResult struct {
	Products      int
	Customers     int
	Orders        int
	LineItems     int
	MarketingRows int
	BudgetRows    int
	Duration      time.Duration
}

// Run executes the full generation pipeline. A single random source is
// consumed in a fixed iteration order (calendar ascending, shops in declared
// order), so equal seeds yield byte-identical record sets.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	started := time.Now()
	cfg := r.config

	src := randx.New(cfg.Seed)
	ids := identity.NewGenerator(src)

	// Phase 1: catalog
	phaseStart := time.Now()
	productGen, err := catalog.NewProductGenerator(catalog.DefaultCategorySpecs())
	if err != nil {
		return nil, fmt.Errorf("phase 1 (catalog): %w", err)
	}
	products := productGen.Generate(src, cfg.NumProducts)

	customers, err := catalog.NewCustomerGenerator(ids).Generate(src, cfg.NumCustomers)
	if err != nil {
		return nil, fmt.Errorf("phase 1 (customers): %w", err)
	}
	r.observePhase("catalog", phaseStart)
	r.logger.Info().
		Int("products", len(products)).
		Int("customers", len(customers)).
		Msg("catalog generated")

	// Phase 2: demand calendar
	phaseStart = time.Now()
	calendar := r.seasonality.DailyMultipliers(cfg.StartDate, cfg.HorizonDays)
	r.observePhase("calendar", phaseStart)

	// Phase 3: order loop
	phaseStart = time.Now()
	var (
		allOrders    []*domain.Order
		allLines     []*domain.LineItem
		allMarketing []*domain.MarketingSpend
	)

	if len(calendar) > 0 && len(products) > 0 && len(customers) > 0 {
		factory, err := orders.NewFactory(orders.FactoryOptions{
			Products:      products,
			Customers:     customers,
			MaxBasketSize: cfg.MaxBasketSize,
		})
		if err != nil {
			return nil, fmt.Errorf("phase 3 (order factory): %w", err)
		}

		for _, day := range calendar {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("run cancelled on %s: %w", day.Date.Format("2006-01-02"), err)
			}

			for _, shop := range cfg.Shops {
				expected := shop.BaseLambda * day.Total

				dayOrders, dayLines, err := factory.GenerateOrdersForDay(
					src, ids, day.Date, expected, shop.ID, shop.Currency)
				if err != nil {
					return nil, fmt.Errorf("phase 3 (orders %s %s): %w",
						shop.ID, day.Date.Format("2006-01-02"), err)
				}
				allOrders = append(allOrders, dayOrders...)
				allLines = append(allLines, dayLines...)

				spend := aggregates.MarketingSpend(src, day.Date, shop, expected, cfg.AvgPriceProxy)
				allMarketing = append(allMarketing, &spend)

				r.recordShopDay(shop.ID, len(dayOrders), len(dayLines))
				r.logger.Debug().
					Str("shop_id", shop.ID).
					Str("day", day.Date.Format("2006-01-02")).
					Int("orders", len(dayOrders)).
					Int("lines", len(dayLines)).
					Msg("shop day generated")
			}
		}
	}
	r.observePhase("orders", phaseStart)
	r.logger.Info().
		Int("orders", len(allOrders)).
		Int("line_items", len(allLines)).
		Msg("order stream generated")

	// Phase 4: monthly budgets
	phaseStart = time.Now()
	budgets := aggregates.MonthlyBudgets(src, allOrders, allLines)
	r.observePhase("budgets", phaseStart)

	// Phase 5: persistence
	phaseStart = time.Now()
	if err := r.persist(ctx, products, customers, allOrders, allLines, allMarketing, budgets); err != nil {
		return nil, fmt.Errorf("phase 5 (persistence): %w", err)
	}
	r.observePhase("persist", phaseStart)

	result := &RunResult{
		Products:      len(products),
		Customers:     len(customers),
		Orders:        len(allOrders),
		LineItems:     len(allLines),
		MarketingRows: len(allMarketing),
		BudgetRows:    len(budgets),
		Duration:      time.Since(started),
	}
	r.logger.Info().
		Int("orders", result.Orders).
		Int("line_items", result.LineItems).
		Msg("run completed")

	return result, nil
}

// persist bulk-inserts all record sets. Orders go in before line items to
// satisfy the foreign key in the relational backend.
func (r *Runner) persist(
	ctx context.Context,
	products []domain.Product,
	customers []domain.Customer,
	orderRecs []*domain.Order,
	lines []*domain.LineItem,
	marketing []*domain.MarketingSpend,
	budgets []domain.BudgetRow,
) error {
	productPtrs := make([]*domain.Product, len(products))
	for i := range products {
		productPtrs[i] = &products[i]
	}
	if err := r.productStore.InsertBulk(ctx, productPtrs); err != nil {
		r.recordStoreError("raw_products")
		return fmt.Errorf("insert products: %w", err)
	}
	r.recordPersisted("raw_products", len(productPtrs))

	customerPtrs := make([]*domain.Customer, len(customers))
	for i := range customers {
		customerPtrs[i] = &customers[i]
	}
	if err := r.customerStore.InsertBulk(ctx, customerPtrs); err != nil {
		r.recordStoreError("customers")
		return fmt.Errorf("insert customers: %w", err)
	}
	r.recordPersisted("customers", len(customerPtrs))

	if err := r.orderStore.InsertBulk(ctx, orderRecs); err != nil {
		r.recordStoreError("raw_orders")
		return fmt.Errorf("insert orders: %w", err)
	}
	r.recordPersisted("raw_orders", len(orderRecs))

	if err := r.lineItemStore.InsertBulk(ctx, lines); err != nil {
		r.recordStoreError("raw_line_items")
		return fmt.Errorf("insert line items: %w", err)
	}
	r.recordPersisted("raw_line_items", len(lines))

	if err := r.marketingStore.InsertBulk(ctx, marketing); err != nil {
		r.recordStoreError("raw_marketing_daily")
		return fmt.Errorf("insert marketing spend: %w", err)
	}
	r.recordPersisted("raw_marketing_daily", len(marketing))

	budgetPtrs := make([]*domain.BudgetRow, len(budgets))
	for i := range budgets {
		budgetPtrs[i] = &budgets[i]
	}
	if err := r.budgetStore.InsertBulk(ctx, budgetPtrs); err != nil {
		r.recordStoreError("raw_budget")
		return fmt.Errorf("insert budgets: %w", err)
	}
	r.recordPersisted("raw_budget", len(budgetPtrs))

	return nil
}

func (r *Runner) observePhase(phase string, start time.Time) {
	r.metrics.ObservePhase(phase, time.Since(start).Seconds())
}

func (r *Runner) recordShopDay(shopID string, orders, lines int) {
	r.metrics.RecordShopDay(shopID, orders, lines)
}

func (r *Runner) recordPersisted(table string, rows int) {
	r.metrics.RecordPersisted(table, rows)
}

func (r *Runner) recordStoreError(table string) {
	r.metrics.RecordStoreError(table, "insert_bulk")
}
