package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// budgetKey identifies one budget row.
type budgetKey struct {
	month    time.Time
	shopID   string
	currency string
}

// BudgetStore is an in-memory implementation of storage.BudgetStore.
type BudgetStore struct {
	mu   sync.RWMutex
	data map[budgetKey]*domain.BudgetRow
}

// NewBudgetStore creates a new in-memory budget store.
func NewBudgetStore() *BudgetStore {
	return &BudgetStore{
		data: make(map[budgetKey]*domain.BudgetRow),
	}
}

// InsertBulk adds multiple budget rows. Fails entire batch on duplicate
// (month, shop_id, currency).
func (s *BudgetStore) InsertBulk(_ context.Context, rows []*domain.BudgetRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[budgetKey]struct{}, len(rows))
	for _, r := range rows {
		if r == nil || r.ShopID == "" {
			return storage.ErrInvalidInput
		}
		k := budgetKey{r.Month, r.ShopID, r.Currency}
		if _, dup := seen[k]; dup {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
	}

	for _, r := range rows {
		rowCopy := *r
		s.data[budgetKey{r.Month, r.ShopID, r.Currency}] = &rowCopy
	}
	return nil
}

// GetByShop retrieves a shop's budget rows, ordered by month ASC.
func (s *BudgetStore) GetByShop(_ context.Context, shopID string) ([]*domain.BudgetRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.BudgetRow
	for _, r := range s.data {
		if r.ShopID == shopID {
			rowCopy := *r
			result = append(result, &rowCopy)
		}
	}
	sortBudget(result)
	return result, nil
}

// GetAll retrieves all budget rows, ordered by month ASC then shop ID ASC.
func (s *BudgetStore) GetAll(_ context.Context) ([]*domain.BudgetRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BudgetRow, 0, len(s.data))
	for _, r := range s.data {
		rowCopy := *r
		result = append(result, &rowCopy)
	}
	sortBudget(result)
	return result, nil
}

// Count returns the number of stored budget rows.
func (s *BudgetStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// sortBudget sorts by month ASC, then shop ID ASC.
func sortBudget(rows []*domain.BudgetRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Month.Equal(rows[j].Month) {
			return rows[i].Month.Before(rows[j].Month)
		}
		return rows[i].ShopID < rows[j].ShopID
	})
}

// Verify interface compliance at compile time.
var _ storage.BudgetStore = (*BudgetStore)(nil)
