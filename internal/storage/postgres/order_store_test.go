package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

func testDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testOrder(id string, shopID string, date time.Time) *domain.Order {
	return &domain.Order{
		OrderID:      id,
		CustomerID:   "c0000001",
		ShopID:       shopID,
		OrderDate:    date,
		CurrencyCode: "EUR",
	}
}

func TestOrderStore_InsertBulkAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	order := testOrder("ord-000000000001", "DE", testDay(2024, time.March, 15))
	err := store.InsertBulk(ctx, []*domain.Order{order})
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "ord-000000000001")
	require.NoError(t, err)

	assert.Equal(t, order.OrderID, retrieved.OrderID)
	assert.Equal(t, order.CustomerID, retrieved.CustomerID)
	assert.Equal(t, order.ShopID, retrieved.ShopID)
	assert.True(t, order.OrderDate.Equal(retrieved.OrderDate))
	assert.Equal(t, order.CurrencyCode, retrieved.CurrencyCode)
}

func TestOrderStore_InsertBulkDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	order := testOrder("ord-dup", "DE", testDay(2024, time.March, 15))
	err := store.InsertBulk(ctx, []*domain.Order{order})
	require.NoError(t, err)

	err = store.InsertBulk(ctx, []*domain.Order{order})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestOrderStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOrderStore_GetByShopAndDateRange(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.Order{
		testOrder("ord-de-1", "DE", testDay(2024, time.January, 10)),
		testOrder("ord-de-2", "DE", testDay(2024, time.January, 20)),
		testOrder("ord-de-3", "DE", testDay(2024, time.February, 5)),
		testOrder("ord-at-1", "AT", testDay(2024, time.January, 15)),
	})
	require.NoError(t, err)

	// Range boundaries are inclusive and filter by shop.
	orders, err := store.GetByShopAndDateRange(ctx, "DE",
		testDay(2024, time.January, 10), testDay(2024, time.January, 31))
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ord-de-1", orders[0].OrderID)
	assert.Equal(t, "ord-de-2", orders[1].OrderID)
}

func TestOrderStore_GetAllOrderedByDateThenID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	day := testDay(2024, time.June, 1)
	err := store.InsertBulk(ctx, []*domain.Order{
		testOrder("ord-b", "DE", day),
		testOrder("ord-a", "AT", day),
		testOrder("ord-c", "CH", testDay(2024, time.May, 30)),
	})
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ord-c", all[0].OrderID)
	assert.Equal(t, "ord-a", all[1].OrderID)
	assert.Equal(t, "ord-b", all[2].OrderID)
}
