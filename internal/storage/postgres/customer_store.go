package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// CustomerStore implements storage.CustomerStore using PostgreSQL.
type CustomerStore struct {
	pool *Pool
}

// NewCustomerStore creates a new CustomerStore.
func NewCustomerStore(pool *Pool) *CustomerStore {
	return &CustomerStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CustomerStore = (*CustomerStore)(nil)

// InsertBulk adds multiple customers atomically. Fails entire batch on
// duplicate ID.
func (s *CustomerStore) InsertBulk(ctx context.Context, customers []*domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO customers (customer_id, activity_prob) VALUES ($1, $2)`

	for _, c := range customers {
		if _, err := tx.Exec(ctx, query, c.ID, c.ActivityProb); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert customer in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by ID. Returns ErrNotFound if not exists.
func (s *CustomerStore) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT customer_id, activity_prob FROM customers WHERE customer_id = $1`

	var c domain.Customer
	err := s.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.ActivityProb)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	return &c, nil
}

// GetAll retrieves all customers, ordered by ID ASC.
func (s *CustomerStore) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT customer_id, activity_prob FROM customers ORDER BY customer_id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all customers: %w", err)
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// Count returns the number of stored customers.
func (s *CustomerStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

// scanCustomers scans all customer rows.
func scanCustomers(rows pgx.Rows) ([]*domain.Customer, error) {
	var result []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.ActivityProb); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return result, nil
}
