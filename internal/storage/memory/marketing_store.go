package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// marketingKey identifies one spend row.
type marketingKey struct {
	date   time.Time
	shopID string
}

// MarketingStore is an in-memory implementation of storage.MarketingStore.
type MarketingStore struct {
	mu   sync.RWMutex
	data map[marketingKey]*domain.MarketingSpend
}

// NewMarketingStore creates a new in-memory marketing store.
func NewMarketingStore() *MarketingStore {
	return &MarketingStore{
		data: make(map[marketingKey]*domain.MarketingSpend),
	}
}

// InsertBulk adds multiple spend rows. Fails entire batch on duplicate
// (date, shop_id).
func (s *MarketingStore) InsertBulk(_ context.Context, rows []*domain.MarketingSpend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[marketingKey]struct{}, len(rows))
	for _, r := range rows {
		if r == nil || r.ShopID == "" {
			return storage.ErrInvalidInput
		}
		k := marketingKey{r.Date, r.ShopID}
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
		s.data[marketingKey{r.Date, r.ShopID}] = &rowCopy
	}
	return nil
}

// GetByShop retrieves a shop's spend rows, ordered by date ASC.
func (s *MarketingStore) GetByShop(_ context.Context, shopID string) ([]*domain.MarketingSpend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.MarketingSpend
	for _, r := range s.data {
		if r.ShopID == shopID {
			rowCopy := *r
			result = append(result, &rowCopy)
		}
	}
	sortMarketing(result)
	return result, nil
}

// GetAll retrieves all spend rows, ordered by date ASC then shop ID ASC.
func (s *MarketingStore) GetAll(_ context.Context) ([]*domain.MarketingSpend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.MarketingSpend, 0, len(s.data))
	for _, r := range s.data {
		rowCopy := *r
		result = append(result, &rowCopy)
	}
	sortMarketing(result)
	return result, nil
}

// Count returns the number of stored spend rows.
func (s *MarketingStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// sortMarketing sorts by date ASC, then shop ID ASC.
func sortMarketing(rows []*domain.MarketingSpend) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].ShopID < rows[j].ShopID
	})
}

// Verify interface compliance at compile time.
var _ storage.MarketingStore = (*MarketingStore)(nil)
