// Package storage defines the store interfaces the generation pipeline
// persists into, plus the sentinel errors all backends share. Backends live
// in the memory, postgres and clickhouse subpackages.
package storage

import (
	"context"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
)

// ProductStore provides access to raw_products storage.
type ProductStore interface {
	// InsertBulk adds multiple products. Fails entire batch on duplicate SKU.
	InsertBulk(ctx context.Context, products []*domain.Product) error

	// GetBySKU retrieves a product by SKU. Returns ErrNotFound if not exists.
	GetBySKU(ctx context.Context, sku int64) (*domain.Product, error)

	// GetAll retrieves all products, ordered by SKU ASC.
	GetAll(ctx context.Context) ([]*domain.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)
}

// CustomerStore provides access to customer pool storage. Customers stay
// internal to the pipeline; no exporter reads them.
type CustomerStore interface {
	// InsertBulk adds multiple customers. Fails entire batch on duplicate ID.
	InsertBulk(ctx context.Context, customers []*domain.Customer) error

	// GetByID retrieves a customer by ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// GetAll retrieves all customers, ordered by ID ASC.
	GetAll(ctx context.Context) ([]*domain.Customer, error)

	// Count returns the number of stored customers.
	Count(ctx context.Context) (int, error)
}

// OrderStore provides access to raw_orders storage.
type OrderStore interface {
	// InsertBulk adds multiple orders. Fails entire batch on duplicate order ID.
	InsertBulk(ctx context.Context, orders []*domain.Order) error

	// GetByID retrieves an order by ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)

	// GetByShopAndDateRange retrieves a shop's orders within [start, end]
	// (inclusive), ordered by date ASC then order ID ASC.
	GetByShopAndDateRange(ctx context.Context, shopID string, start, end time.Time) ([]*domain.Order, error)

	// GetAll retrieves all orders, ordered by date ASC then order ID ASC.
	GetAll(ctx context.Context) ([]*domain.Order, error)

	// Count returns the number of stored orders.
	Count(ctx context.Context) (int, error)
}

// LineItemStore provides access to raw_line_items storage.
type LineItemStore interface {
	// InsertBulk adds multiple line items. Fails entire batch on duplicate line ID.
	InsertBulk(ctx context.Context, lines []*domain.LineItem) error

	// GetByOrderID retrieves an order's lines in insertion order.
	GetByOrderID(ctx context.Context, orderID string) ([]*domain.LineItem, error)

	// GetAll retrieves all line items in insertion order.
	GetAll(ctx context.Context) ([]*domain.LineItem, error)

	// Count returns the number of stored line items.
	Count(ctx context.Context) (int, error)
}

// MarketingStore provides access to raw_marketing_daily storage.
type MarketingStore interface {
	// InsertBulk adds multiple spend rows. Fails entire batch on duplicate
	// (date, shop_id).
	InsertBulk(ctx context.Context, rows []*domain.MarketingSpend) error

	// GetByShop retrieves a shop's spend rows, ordered by date ASC.
	GetByShop(ctx context.Context, shopID string) ([]*domain.MarketingSpend, error)

	// GetAll retrieves all spend rows, ordered by date ASC then shop ID ASC.
	GetAll(ctx context.Context) ([]*domain.MarketingSpend, error)

	// Count returns the number of stored spend rows.
	Count(ctx context.Context) (int, error)
}

// BudgetStore provides access to raw_budget storage.
type BudgetStore interface {
	// InsertBulk adds multiple budget rows. Fails entire batch on duplicate
	// (month, shop_id, currency).
	InsertBulk(ctx context.Context, rows []*domain.BudgetRow) error

	// GetByShop retrieves a shop's budget rows, ordered by month ASC.
	GetByShop(ctx context.Context, shopID string) ([]*domain.BudgetRow, error)

	// GetAll retrieves all budget rows, ordered by month ASC then shop ID ASC.
	GetAll(ctx context.Context) ([]*domain.BudgetRow, error)

	// Count returns the number of stored budget rows.
	Count(ctx context.Context) (int, error)
}
