package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// OrderStore is an in-memory implementation of storage.OrderStore.
type OrderStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Order // keyed by order ID
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		data: make(map[string]*domain.Order),
	}
}

// InsertBulk adds multiple orders. Fails entire batch on duplicate order ID.
func (s *OrderStore) InsertBulk(_ context.Context, orders []*domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if o == nil || o.OrderID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[o.OrderID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[o.OrderID] = struct{}{}
		if _, exists := s.data[o.OrderID]; exists {
			return storage.ErrDuplicateKey
		}
	}

	for _, o := range orders {
		orderCopy := *o
		s.data[o.OrderID] = &orderCopy
	}
	return nil
}

// GetByID retrieves an order by ID. Returns ErrNotFound if not exists.
func (s *OrderStore) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, exists := s.data[orderID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	orderCopy := *o
	return &orderCopy, nil
}

// GetByShopAndDateRange retrieves a shop's orders within [start, end]
// (inclusive), ordered by date ASC then order ID ASC.
func (s *OrderStore) GetByShopAndDateRange(_ context.Context, shopID string, start, end time.Time) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Order
	for _, o := range s.data {
		if o.ShopID != shopID {
			continue
		}
		if o.OrderDate.Before(start) || o.OrderDate.After(end) {
			continue
		}
		orderCopy := *o
		result = append(result, &orderCopy)
	}
	sortOrders(result)
	return result, nil
}

// GetAll retrieves all orders, ordered by date ASC then order ID ASC.
func (s *OrderStore) GetAll(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0, len(s.data))
	for _, o := range s.data {
		orderCopy := *o
		result = append(result, &orderCopy)
	}
	sortOrders(result)
	return result, nil
}

// Count returns the number of stored orders.
func (s *OrderStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// sortOrders sorts by date ASC, then order ID ASC for a stable tiebreak.
func sortOrders(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.Before(orders[j].OrderDate)
		}
		return orders[i].OrderID < orders[j].OrderID
	})
}

// Verify interface compliance at compile time.
var _ storage.OrderStore = (*OrderStore)(nil)
