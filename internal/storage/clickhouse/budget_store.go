package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// BudgetStore implements storage.BudgetStore using ClickHouse.
type BudgetStore struct {
	conn *Conn
}

// NewBudgetStore creates a new BudgetStore.
func NewBudgetStore(conn *Conn) *BudgetStore {
	return &BudgetStore{conn: conn}
}

// Compile-time interface check.
var _ storage.BudgetStore = (*BudgetStore)(nil)

// InsertBulk adds multiple budget rows. Fails entire batch on duplicate
// (month, shop_id, currency). Duplicates are checked explicitly before the
// batch is sent.
func (s *BudgetStore) InsertBulk(ctx context.Context, rows []*domain.BudgetRow) error {
	if len(rows) == 0 {
		return nil
	}

	type key struct {
		month    time.Time
		shopID   string
		currency string
	}
	seen := make(map[key]struct{})
	for _, r := range rows {
		if r.ShopID == "" || r.Currency == "" {
			return storage.ErrInvalidInput
		}
		k := key{r.Month.UTC().Truncate(24 * time.Hour), r.ShopID, r.Currency}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, r := range rows {
		exists, err := s.exists(ctx, r.Month, r.ShopID, r.Currency)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO raw_budget (
			month, shop_id, currency, budget_revenue
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(r.Month, r.ShopID, r.Currency, r.BudgetRevenue)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByShop retrieves a shop's budget rows, ordered by month ASC.
func (s *BudgetStore) GetByShop(ctx context.Context, shopID string) ([]*domain.BudgetRow, error) {
	query := `
		SELECT month, shop_id, currency, budget_revenue
		FROM raw_budget
		WHERE shop_id = ?
		ORDER BY month ASC
	`

	rows, err := s.conn.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("query by shop: %w", err)
	}
	defer rows.Close()

	return scanBudgetRows(rows)
}

// GetAll retrieves all budget rows, ordered by month ASC then shop ID ASC.
func (s *BudgetStore) GetAll(ctx context.Context) ([]*domain.BudgetRow, error) {
	query := `
		SELECT month, shop_id, currency, budget_revenue
		FROM raw_budget
		ORDER BY month ASC, shop_id ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	defer rows.Close()

	return scanBudgetRows(rows)
}

// Count returns the number of stored budget rows.
func (s *BudgetStore) Count(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM raw_budget`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count budget rows: %w", err)
	}
	return int(count), nil
}

// exists checks if a row with the given key exists.
func (s *BudgetStore) exists(ctx context.Context, month time.Time, shopID, currency string) (bool, error) {
	query := `
		SELECT count(*) FROM raw_budget
		WHERE month = ? AND shop_id = ? AND currency = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, month, shopID, currency).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanBudgetRows scans multiple rows.
func scanBudgetRows(rows chRows) ([]*domain.BudgetRow, error) {
	var out []*domain.BudgetRow

	for rows.Next() {
		var b domain.BudgetRow
		var month time.Time

		err := rows.Scan(&month, &b.ShopID, &b.Currency, &b.BudgetRevenue)
		if err != nil {
			return nil, fmt.Errorf("scan budget row: %w", err)
		}

		b.Month = month.UTC().Truncate(24 * time.Hour)
		out = append(out, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget rows: %w", err)
	}

	return out, nil
}
