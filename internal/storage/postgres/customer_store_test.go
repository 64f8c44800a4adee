package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

func TestCustomerStore_InsertBulkAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCustomerStore(pool)
	ctx := context.Background()

	customers := []*domain.Customer{
		{ID: "c0000001", ActivityProb: 0.0004},
		{ID: "c0000002", ActivityProb: 0.0001},
	}

	err := store.InsertBulk(ctx, customers)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "c0000002")
	require.NoError(t, err)
	assert.Equal(t, "c0000002", retrieved.ID)
	assert.Equal(t, 0.0001, retrieved.ActivityProb)
}

func TestCustomerStore_InsertBulkDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCustomerStore(pool)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.Customer{{ID: "c0000001", ActivityProb: 0.5}})
	require.NoError(t, err)

	err = store.InsertBulk(ctx, []*domain.Customer{{ID: "c0000001", ActivityProb: 0.5}})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestCustomerStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCustomerStore(pool)

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCustomerStore_GetAllOrderedAndCount(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCustomerStore(pool)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.Customer{
		{ID: "c0000003", ActivityProb: 0.1},
		{ID: "c0000001", ActivityProb: 0.2},
		{ID: "c0000002", ActivityProb: 0.7},
	})
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c0000001", all[0].ID)
	assert.Equal(t, "c0000002", all[1].ID)
	assert.Equal(t, "c0000003", all[2].ID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
