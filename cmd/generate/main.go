// Package main provides the dataset generation entry point.
// Executes: catalog -> calendar -> order loop -> aggregates -> persistence -> export
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/export"
	"github.com/julianhilgemann/BI-Pipeline/internal/observability"
	"github.com/julianhilgemann/BI-Pipeline/internal/simulation"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/clickhouse"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/memory"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/migrations"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/postgres"
)

func main() {
	// .env provides DSN defaults; absence is fine.
	_ = godotenv.Load()

	defaults := domain.DefaultGenerationConfig()

	seed := flag.Int64("seed", defaults.Seed, "Random seed for the run")
	startDate := flag.String("start-date", defaults.StartDate.Format("2006-01-02"), "First simulated day (YYYY-MM-DD)")
	days := flag.Int("days", defaults.HorizonDays, "Number of days to simulate")
	products := flag.Int("products", defaults.NumProducts, "Catalog size")
	customers := flag.Int("customers", defaults.NumCustomers, "Customer pool size")
	shopsSpec := flag.String("shops", "DE:50:EUR,AT:15:EUR,CH:10:CHF", "Comma-separated shop spec ID:lambda:currency")
	avgPriceProxy := flag.Float64("avg-price-proxy", defaults.AvgPriceProxy, "Planning price proxy for marketing spend")
	outputDir := flag.String("output-dir", "", "Directory for the CSV snapshot (empty disables export)")
	useMemory := flag.Bool("use-memory", false, "Force in-memory stores regardless of DSN flags")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL DSN for entity tables")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse DSN for analytics tables")
	metricsAddr := flag.String("metrics-addr", "", "Listen address for the Prometheus endpoint (empty disables)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	logger := newLogger(*verbose)

	start, err := time.ParseInLocation("2006-01-02", *startDate, time.UTC)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -start-date")
	}

	shops, err := parseShops(*shopsSpec)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -shops")
	}

	cfg := domain.GenerationConfig{
		Seed:          *seed,
		StartDate:     start,
		HorizonDays:   *days,
		Shops:         shops,
		NumProducts:   *products,
		NumCustomers:  *customers,
		MaxBasketSize: defaults.MaxBasketSize,
		AvgPriceProxy: *avgPriceProxy,
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Warn().Str("signal", sig.String()).Msg("cancelling run")
		cancel()
	}()

	metrics := observability.NewMetrics("")
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", observability.Handler())
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				logger.Error().Err(err).Msg("metrics endpoint failed")
			}
		}()
		logger.Info().Str("addr", *metricsAddr).Msg("metrics endpoint listening")
	}

	stores, closeStores, err := buildStores(ctx, logger, *useMemory, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("store setup failed")
	}
	defer closeStores()

	runner, err := simulation.NewRunner(simulation.Options{
		ProductStore:   stores.products,
		CustomerStore:  stores.customers,
		OrderStore:     stores.orders,
		LineItemStore:  stores.lineItems,
		MarketingStore: stores.marketing,
		BudgetStore:    stores.budget,
		Config:         cfg,
		Logger:         logger,
		Metrics:        metrics,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("runner setup failed")
	}

	result, err := runner.Run(ctx)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		logger.Fatal().Err(err).Msg("run failed")
	}
	metrics.RunsTotal.WithLabelValues("ok").Inc()
	metrics.LastSuccessfulRun.SetToCurrentTime()

	logger.Info().
		Int("products", result.Products).
		Int("customers", result.Customers).
		Int("orders", result.Orders).
		Int("line_items", result.LineItems).
		Int("marketing_rows", result.MarketingRows).
		Int("budget_rows", result.BudgetRows).
		Dur("duration", result.Duration).
		Msg("generation complete")

	if *outputDir != "" {
		if err := writeSnapshot(ctx, stores, *outputDir); err != nil {
			logger.Fatal().Err(err).Msg("snapshot export failed")
		}
		logger.Info().Str("dir", *outputDir).Msg("csv snapshot written")
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// storeSet bundles one store per table, whatever the backend.
type storeSet struct {
	products  storage.ProductStore
	customers storage.CustomerStore
	orders    storage.OrderStore
	lineItems storage.LineItemStore
	marketing storage.MarketingStore
	budget    storage.BudgetStore
}

// buildStores wires entity tables to PostgreSQL and analytics tables to
// ClickHouse when DSNs are given, falling back to memory per backend.
func buildStores(ctx context.Context, logger zerolog.Logger, useMemory bool, postgresDSN, clickhouseDSN string) (*storeSet, func(), error) {
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

	if useMemory {
		return stores, closeAll, nil
	}

	if postgresDSN != "" {
		pool, err := postgres.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		closers = append(closers, pool.Close)

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}

		stores.products = postgres.NewProductStore(pool)
		stores.customers = postgres.NewCustomerStore(pool)
		stores.orders = postgres.NewOrderStore(pool)
		stores.lineItems = postgres.NewLineItemStore(pool)
		logger.Info().Msg("entity tables on postgres")
	}

	if clickhouseDSN != "" {
		conn, err := clickhouse.NewConn(ctx, clickhouseDSN)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("clickhouse: %w", err)
		}
		closers = append(closers, func() { _ = conn.Close() })

		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}

		stores.marketing = clickhouse.NewMarketingStore(conn)
		stores.budget = clickhouse.NewBudgetStore(conn)
		logger.Info().Msg("analytics tables on clickhouse")
	}

	return stores, closeAll, nil
}

// writeSnapshot exports the stored dataset as CSV files. Customers are not
// exported.
func writeSnapshot(ctx context.Context, stores *storeSet, dir string) error {
	products, err := stores.products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	orders, err := stores.orders.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	lines, err := stores.lineItems.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load line items: %w", err)
	}
	marketing, err := stores.marketing.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load marketing spend: %w", err)
	}
	budget, err := stores.budget.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}

	return export.NewWriter(dir).WriteSnapshot(&export.Snapshot{
		Products:  products,
		Orders:    orders,
		LineItems: lines,
		Marketing: marketing,
		Budget:    budget,
	})
}

// parseShops parses a comma-separated ID:lambda:currency list.
func parseShops(spec string) ([]domain.ShopConfig, error) {
	parts := strings.Split(spec, ",")
	shops := make([]domain.ShopConfig, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("shop %q: want ID:lambda:currency", part)
		}
		lambda, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("shop %q: parse lambda: %w", part, err)
		}
		if lambda < 0 {
			return nil, fmt.Errorf("shop %q: lambda must not be negative", part)
		}
		shops = append(shops, domain.ShopConfig{
			ID:         fields[0],
			BaseLambda: lambda,
			Currency:   fields[2],
		})
	}
	if len(shops) == 0 {
		return nil, fmt.Errorf("no shops in %q", spec)
	}
	return shops, nil
}
