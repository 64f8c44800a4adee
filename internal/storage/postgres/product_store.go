package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// ProductStore implements storage.ProductStore using PostgreSQL.
type ProductStore struct {
	pool *Pool
}

// NewProductStore creates a new ProductStore.
func NewProductStore(pool *Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ProductStore = (*ProductStore)(nil)

// InsertBulk adds multiple products atomically. Fails entire batch on
// duplicate SKU.
func (s *ProductStore) InsertBulk(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO raw_products (
			sku_id, category, avg_price_eur, return_prob, popularity_score, unit_cost_eur, product_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, p := range products {
		_, err := tx.Exec(ctx, query,
			p.SKU,
			string(p.Category),
			p.AvgPriceEUR,
			p.ReturnProb,
			p.PopularityScore,
			p.UnitCostEUR,
			p.Name,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert product in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetBySKU retrieves a product by SKU. Returns ErrNotFound if not exists.
func (s *ProductStore) GetBySKU(ctx context.Context, sku int64) (*domain.Product, error) {
	query := `
		SELECT sku_id, category, avg_price_eur, return_prob, popularity_score, unit_cost_eur, product_name
		FROM raw_products
		WHERE sku_id = $1
	`

	row := s.pool.QueryRow(ctx, query, sku)
	p, err := scanProduct(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// GetAll retrieves all products, ordered by SKU ASC.
func (s *ProductStore) GetAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT sku_id, category, avg_price_eur, return_prob, popularity_score, unit_cost_eur, product_name
		FROM raw_products
		ORDER BY sku_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Count returns the number of stored products.
func (s *ProductStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM raw_products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// scanProduct scans one product row.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var category string
	err := row.Scan(&p.SKU, &category, &p.AvgPriceEUR, &p.ReturnProb, &p.PopularityScore, &p.UnitCostEUR, &p.Name)
	if err != nil {
		return nil, err
	}
	p.Category = domain.Category(category)
	return &p, nil
}

// scanProducts scans all product rows.
func scanProducts(rows pgx.Rows) ([]*domain.Product, error) {
	var result []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return result, nil
}
