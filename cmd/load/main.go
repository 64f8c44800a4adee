// Package main loads a CSV snapshot into the database backends.
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
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/clickhouse"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/migrations"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	inputDir := flag.String("input-dir", "", "Directory holding the raw_*.csv snapshot")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL DSN for entity tables")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse DSN for analytics tables")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if *inputDir == "" {
		logger.Fatal().Msg("-input-dir is required")
	}
	if *postgresDSN == "" && *clickhouseDSN == "" {
		logger.Fatal().Msg("at least one of -postgres-dsn and -clickhouse-dsn is required")
	}

	ctx := context.Background()

	snap, err := export.NewReader(*inputDir).ReadSnapshot()
	if err != nil {
		logger.Fatal().Err(err).Msg("read snapshot failed")
	}
	logger.Info().
		Int("products", len(snap.Products)).
		Int("orders", len(snap.Orders)).
		Int("line_items", len(snap.LineItems)).
		Int("marketing_rows", len(snap.Marketing)).
		Int("budget_rows", len(snap.Budget)).
		Msg("snapshot parsed")

	if *postgresDSN != "" {
		if err := loadPostgres(ctx, logger, *postgresDSN, snap); err != nil {
			logger.Fatal().Err(err).Msg("postgres load failed")
		}
	}

	if *clickhouseDSN != "" {
		if err := loadClickhouse(ctx, logger, *clickhouseDSN, snap); err != nil {
			logger.Fatal().Err(err).Msg("clickhouse load failed")
		}
	}
}

// loadPostgres inserts the entity tables. The snapshot carries no customers,
// so orders reference customer IDs that only existed inside the generating
// run.
func loadPostgres(ctx context.Context, logger zerolog.Logger, dsn string, snap *export.Snapshot) error {
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if err := postgres.NewProductStore(pool).InsertBulk(ctx, snap.Products); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	logger.Info().Str("table", "raw_products").Int("rows", len(snap.Products)).Msg("loaded")

	if err := postgres.NewOrderStore(pool).InsertBulk(ctx, snap.Orders); err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	logger.Info().Str("table", "raw_orders").Int("rows", len(snap.Orders)).Msg("loaded")

	if err := postgres.NewLineItemStore(pool).InsertBulk(ctx, snap.LineItems); err != nil {
		return fmt.Errorf("insert line items: %w", err)
	}
	logger.Info().Str("table", "raw_line_items").Int("rows", len(snap.LineItems)).Msg("loaded")

	return nil
}

func loadClickhouse(ctx context.Context, logger zerolog.Logger, dsn string, snap *export.Snapshot) error {
	conn, err := clickhouse.NewConn(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if err := clickhouse.NewMarketingStore(conn).InsertBulk(ctx, snap.Marketing); err != nil {
		return fmt.Errorf("insert marketing spend: %w", err)
	}
	logger.Info().Str("table", "raw_marketing_daily").Int("rows", len(snap.Marketing)).Msg("loaded")

	if err := clickhouse.NewBudgetStore(conn).InsertBulk(ctx, snap.Budget); err != nil {
		return fmt.Errorf("insert budgets: %w", err)
	}
	logger.Info().Str("table", "raw_budget").Int("rows", len(snap.Budget)).Msg("loaded")

	return nil
}
