// Package memory provides in-memory store implementations, used by unit
// tests and the default no-database pipeline run.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// ProductStore is an in-memory implementation of storage.ProductStore.
type ProductStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.Product // keyed by SKU
}

// NewProductStore creates a new in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		data: make(map[int64]*domain.Product),
	}
}

// InsertBulk adds multiple products. Fails entire batch on duplicate SKU.
func (s *ProductStore) InsertBulk(_ context.Context, products []*domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if p == nil {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[p.SKU]; dup {
			return storage.ErrDuplicateKey
		}
		seen[p.SKU] = struct{}{}
		if _, exists := s.data[p.SKU]; exists {
			return storage.ErrDuplicateKey
		}
	}

	for _, p := range products {
		productCopy := *p
		s.data[p.SKU] = &productCopy
	}
	return nil
}

// GetBySKU retrieves a product by SKU. Returns ErrNotFound if not exists.
func (s *ProductStore) GetBySKU(_ context.Context, sku int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[sku]
	if !exists {
		return nil, storage.ErrNotFound
	}
	productCopy := *p
	return &productCopy, nil
}

// GetAll retrieves all products, ordered by SKU ASC.
func (s *ProductStore) GetAll(_ context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Product, 0, len(s.data))
	for _, p := range s.data {
		productCopy := *p
		result = append(result, &productCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SKU < result[j].SKU
	})
	return result, nil
}

// Count returns the number of stored products.
func (s *ProductStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// Verify interface compliance at compile time.
var _ storage.ProductStore = (*ProductStore)(nil)
