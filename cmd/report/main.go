// Package main renders a markdown summary of a stored or exported dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/julianhilgemann/BI-Pipeline/internal/export"
	"github.com/julianhilgemann/BI-Pipeline/internal/reporting"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/clickhouse"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/memory"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	inputDir := flag.String("input-dir", "", "CSV snapshot directory (alternative to DSNs)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL DSN for entity tables")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse DSN for analytics tables")
	outputFile := flag.String("output", "", "Markdown output file (default stdout)")
	seed := flag.Int64("seed", 0, "Seed echoed in the report header")
	startDate := flag.String("start-date", "", "Start date echoed in the report header (YYYY-MM-DD)")
	days := flag.Int("days", 0, "Horizon echoed in the report header")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if *inputDir == "" && *postgresDSN == "" {
		logger.Fatal().Msg("either -input-dir or -postgres-dsn is required")
	}

	var start time.Time
	if *startDate != "" {
		var err error
		start, err = time.ParseInLocation("2006-01-02", *startDate, time.UTC)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid -start-date")
		}
	}

	ctx := context.Background()

	stores, closeStores, err := buildStores(ctx, *inputDir, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("store setup failed")
	}
	defer closeStores()

	gen := reporting.NewGenerator(
		stores.products, stores.customers, stores.orders,
		stores.lineItems, stores.marketing, stores.budget,
		reporting.Meta{Seed: *seed, StartDate: start, HorizonDays: *days},
	)

	report, err := gen.Generate(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("report generation failed")
	}

	md := reporting.RenderMarkdown(report)
	if *outputFile == "" {
		fmt.Print(md)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(md), 0o644); err != nil {
		logger.Fatal().Err(err).Msg("write report failed")
	}
	logger.Info().Str("file", *outputFile).Msg("report written")
}

type storeSet struct {
	products  storage.ProductStore
	customers storage.CustomerStore
	orders    storage.OrderStore
	lineItems storage.LineItemStore
	marketing storage.MarketingStore
	budget    storage.BudgetStore
}

// buildStores reads either the CSV snapshot into memory stores or connects
// to the database backends. The snapshot carries no customers, so that count
// reads zero in snapshot mode.
func buildStores(ctx context.Context, inputDir, postgresDSN, clickhouseDSN string) (*storeSet, func(), error) {
	stores := &storeSet{
		products:  memory.NewProductStore(),
		customers: memory.NewCustomerStore(),
		orders:    memory.NewOrderStore(),
		lineItems: memory.NewLineItemStore(),
		marketing: memory.NewMarketingStore(),
		budget:    memory.NewBudgetStore(),
	}
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if inputDir != "" {
		snap, err := export.NewReader(inputDir).ReadSnapshot()
		if err != nil {
			return nil, nil, fmt.Errorf("read snapshot: %w", err)
		}

		if err := stores.products.InsertBulk(ctx, snap.Products); err != nil {
			return nil, nil, fmt.Errorf("load products: %w", err)
		}
		if err := stores.orders.InsertBulk(ctx, snap.Orders); err != nil {
			return nil, nil, fmt.Errorf("load orders: %w", err)
		}
		if err := stores.lineItems.InsertBulk(ctx, snap.LineItems); err != nil {
			return nil, nil, fmt.Errorf("load line items: %w", err)
		}
		if err := stores.marketing.InsertBulk(ctx, snap.Marketing); err != nil {
			return nil, nil, fmt.Errorf("load marketing spend: %w", err)
		}
		if err := stores.budget.InsertBulk(ctx, snap.Budget); err != nil {
			return nil, nil, fmt.Errorf("load budgets: %w", err)
		}
		return stores, closeAll, nil
	}

	pool, err := postgres.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}
	closers = append(closers, pool.Close)

	stores.products = postgres.NewProductStore(pool)
	stores.customers = postgres.NewCustomerStore(pool)
	stores.orders = postgres.NewOrderStore(pool)
	stores.lineItems = postgres.NewLineItemStore(pool)

	if clickhouseDSN != "" {
		conn, err := clickhouse.NewConn(ctx, clickhouseDSN)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("clickhouse: %w", err)
		}
		closers = append(closers, func() { _ = conn.Close() })

		stores.marketing = clickhouse.NewMarketingStore(conn)
		stores.budget = clickhouse.NewBudgetStore(conn)
	}

	return stores, closeAll, nil
}
