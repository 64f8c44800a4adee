package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

func testBudget(month time.Time, shopID, currency string, revenue float64) *domain.BudgetRow {
	return &domain.BudgetRow{
		Month:         month,
		ShopID:        shopID,
		Currency:      currency,
		BudgetRevenue: revenue,
	}
}

func TestBudgetStore_InsertBulkAndGetByShop(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBudgetStore(conn)
	ctx := context.Background()

	rows := []*domain.BudgetRow{
		testBudget(testDay(2024, time.February, 1), "DE", "EUR", 10234.56),
		testBudget(testDay(2024, time.January, 1), "DE", "EUR", 9876.54),
		testBudget(testDay(2024, time.January, 1), "CH", "CHF", 4321.00),
	}

	err := store.InsertBulk(ctx, rows)
	require.NoError(t, err)

	retrieved, err := store.GetByShop(ctx, "DE")
	require.NoError(t, err)
	require.Len(t, retrieved, 2)

	assert.True(t, testDay(2024, time.January, 1).Equal(retrieved[0].Month))
	assert.Equal(t, 9876.54, retrieved[0].BudgetRevenue)
	assert.Equal(t, "EUR", retrieved[0].Currency)
	assert.True(t, testDay(2024, time.February, 1).Equal(retrieved[1].Month))
}

func TestBudgetStore_InsertBulkDuplicate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBudgetStore(conn)
	ctx := context.Background()

	month := testDay(2024, time.January, 1)
	err := store.InsertBulk(ctx, []*domain.BudgetRow{testBudget(month, "DE", "EUR", 100.0)})
	require.NoError(t, err)

	err = store.InsertBulk(ctx, []*domain.BudgetRow{testBudget(month, "DE", "EUR", 200.0)})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// A different currency for the same shop and month is a distinct key.
	err = store.InsertBulk(ctx, []*domain.BudgetRow{testBudget(month, "DE", "CHF", 200.0)})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBudgetStore_InsertBulkInvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBudgetStore(conn)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.BudgetRow{
		testBudget(testDay(2024, time.January, 1), "", "EUR", 100.0),
	})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestBudgetStore_GetAllOrdered(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBudgetStore(conn)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.BudgetRow{
		testBudget(testDay(2024, time.February, 1), "AT", "EUR", 1.0),
		testBudget(testDay(2024, time.January, 1), "DE", "EUR", 2.0),
		testBudget(testDay(2024, time.January, 1), "AT", "EUR", 3.0),
	})
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "AT", all[0].ShopID)
	assert.Equal(t, "DE", all[1].ShopID)
	assert.True(t, testDay(2024, time.February, 1).Equal(all[2].Month))
}
