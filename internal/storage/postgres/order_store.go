package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// OrderStore implements storage.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *Pool
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(pool *Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// Compile-time interface check.
var _ storage.OrderStore = (*OrderStore)(nil)

// InsertBulk adds multiple orders atomically. Fails entire batch on
// duplicate order ID.
func (s *OrderStore) InsertBulk(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO raw_orders (order_id, customer_id, shop_id, order_date, currency_code)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, o := range orders {
		_, err := tx.Exec(ctx, query, o.OrderID, o.CustomerID, o.ShopID, o.OrderDate, o.CurrencyCode)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert order in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves an order by ID. Returns ErrNotFound if not exists.
func (s *OrderStore) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT order_id, customer_id, shop_id, order_date, currency_code
		FROM raw_orders
		WHERE order_id = $1
	`

	row := s.pool.QueryRow(ctx, query, orderID)
	o, err := scanOrder(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// GetByShopAndDateRange retrieves a shop's orders within [start, end]
// (inclusive), ordered by date ASC then order ID ASC.
func (s *OrderStore) GetByShopAndDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*domain.Order, error) {
	query := `
		SELECT order_id, customer_id, shop_id, order_date, currency_code
		FROM raw_orders
		WHERE shop_id = $1 AND order_date >= $2 AND order_date <= $3
		ORDER BY order_date ASC, order_id ASC
	`

	rows, err := s.pool.Query(ctx, query, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("get orders by shop and date range: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// GetAll retrieves all orders, ordered by date ASC then order ID ASC.
func (s *OrderStore) GetAll(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT order_id, customer_id, shop_id, order_date, currency_code
		FROM raw_orders
		ORDER BY order_date ASC, order_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Count returns the number of stored orders.
func (s *OrderStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM raw_orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// scanOrder scans one order row. Dates come back in UTC midnight form.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var orderDate time.Time
	err := row.Scan(&o.OrderID, &o.CustomerID, &o.ShopID, &orderDate, &o.CurrencyCode)
	if err != nil {
		return nil, err
	}
	o.OrderDate = time.Date(orderDate.Year(), orderDate.Month(), orderDate.Day(), 0, 0, 0, 0, time.UTC)
	return &o, nil
}

// scanOrders scans all order rows.
func scanOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var result []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return result, nil
}
