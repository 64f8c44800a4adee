package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// MarketingStore implements storage.MarketingStore using ClickHouse.
type MarketingStore struct {
	conn *Conn
}

// NewMarketingStore creates a new MarketingStore.
func NewMarketingStore(conn *Conn) *MarketingStore {
	return &MarketingStore{conn: conn}
}

// Compile-time interface check.
var _ storage.MarketingStore = (*MarketingStore)(nil)

// InsertBulk adds multiple spend rows. Fails entire batch on duplicate
// (date, shop_id). MergeTree does not enforce uniqueness, so duplicates are
// checked explicitly before the batch is sent.
func (s *MarketingStore) InsertBulk(ctx context.Context, rows []*domain.MarketingSpend) error {
	if len(rows) == 0 {
		return nil
	}

	type key struct {
		date   time.Time
		shopID string
	}
	seen := make(map[key]struct{})
	for _, r := range rows {
		if r.ShopID == "" || r.Currency == "" {
			return storage.ErrInvalidInput
		}
		k := key{r.Date.UTC().Truncate(24 * time.Hour), r.ShopID}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, r := range rows {
		exists, err := s.exists(ctx, r.Date, r.ShopID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO raw_marketing_daily (
			spend_date, shop_id, spend_amount, currency
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(r.Date, r.ShopID, r.SpendAmount, r.Currency)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByShop retrieves a shop's spend rows, ordered by date ASC.
func (s *MarketingStore) GetByShop(ctx context.Context, shopID string) ([]*domain.MarketingSpend, error) {
	query := `
		SELECT spend_date, shop_id, spend_amount, currency
		FROM raw_marketing_daily
		WHERE shop_id = ?
		ORDER BY spend_date ASC
	`

	rows, err := s.conn.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("query by shop: %w", err)
	}
	defer rows.Close()

	return scanMarketingSpend(rows)
}

// GetAll retrieves all spend rows, ordered by date ASC then shop ID ASC.
func (s *MarketingStore) GetAll(ctx context.Context) ([]*domain.MarketingSpend, error) {
	query := `
		SELECT spend_date, shop_id, spend_amount, currency
		FROM raw_marketing_daily
		ORDER BY spend_date ASC, shop_id ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	defer rows.Close()

	return scanMarketingSpend(rows)
}

// Count returns the number of stored spend rows.
func (s *MarketingStore) Count(ctx context.Context) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM raw_marketing_daily`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count marketing rows: %w", err)
	}
	return int(count), nil
}

// exists checks if a row with the given key exists.
func (s *MarketingStore) exists(ctx context.Context, date time.Time, shopID string) (bool, error) {
	query := `
		SELECT count(*) FROM raw_marketing_daily
		WHERE spend_date = ? AND shop_id = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, date, shopID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanMarketingSpend scans multiple rows.
func scanMarketingSpend(rows chRows) ([]*domain.MarketingSpend, error) {
	var out []*domain.MarketingSpend

	for rows.Next() {
		var m domain.MarketingSpend
		var date time.Time

		err := rows.Scan(&date, &m.ShopID, &m.SpendAmount, &m.Currency)
		if err != nil {
			return nil, fmt.Errorf("scan marketing row: %w", err)
		}

		m.Date = date.UTC().Truncate(24 * time.Hour)
		out = append(out, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate marketing rows: %w", err)
	}

	return out, nil
}
