package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// LineItemStore implements storage.LineItemStore using PostgreSQL. A serial
// seq column preserves the factory's selection order across reads.
type LineItemStore struct {
	pool *Pool
}

// NewLineItemStore creates a new LineItemStore.
func NewLineItemStore(pool *Pool) *LineItemStore {
	return &LineItemStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LineItemStore = (*LineItemStore)(nil)

// InsertBulk adds multiple line items atomically. Fails entire batch on
// duplicate line ID.
func (s *LineItemStore) InsertBulk(ctx context.Context, lines []*domain.LineItem) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO raw_line_items (line_id, order_id, sku_id, qty, unit_price_paid, unit_cost, is_returned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, l := range lines {
		_, err := tx.Exec(ctx, query,
			l.LineID,
			l.OrderID,
			l.SKU,
			l.Qty,
			l.UnitPricePaid,
			l.UnitCost,
			l.IsReturned,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert line item in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByOrderID retrieves an order's lines in insertion order.
func (s *LineItemStore) GetByOrderID(ctx context.Context, orderID string) ([]*domain.LineItem, error) {
	query := `
		SELECT line_id, order_id, sku_id, qty, unit_price_paid, unit_cost, is_returned
		FROM raw_line_items
		WHERE order_id = $1
		ORDER BY seq ASC
	`

	rows, err := s.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get line items by order id: %w", err)
	}
	defer rows.Close()

	return scanLineItems(rows)
}

// GetAll retrieves all line items in insertion order.
func (s *LineItemStore) GetAll(ctx context.Context) ([]*domain.LineItem, error) {
	query := `
		SELECT line_id, order_id, sku_id, qty, unit_price_paid, unit_cost, is_returned
		FROM raw_line_items
		ORDER BY seq ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all line items: %w", err)
	}
	defer rows.Close()

	return scanLineItems(rows)
}

// Count returns the number of stored line items.
func (s *LineItemStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM raw_line_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count line items: %w", err)
	}
	return count, nil
}

// scanLineItems scans all line item rows.
func scanLineItems(rows pgx.Rows) ([]*domain.LineItem, error) {
	var result []*domain.LineItem
	for rows.Next() {
		var l domain.LineItem
		err := rows.Scan(&l.LineID, &l.OrderID, &l.SKU, &l.Qty, &l.UnitPricePaid, &l.UnitCost, &l.IsReturned)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		result = append(result, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}
	return result, nil
}
