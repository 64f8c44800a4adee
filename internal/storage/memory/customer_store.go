package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// CustomerStore is an in-memory implementation of storage.CustomerStore.
type CustomerStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Customer // keyed by customer ID
}

// NewCustomerStore creates a new in-memory customer store.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		data: make(map[string]*domain.Customer),
	}
}

// InsertBulk adds multiple customers. Fails entire batch on duplicate ID.
func (s *CustomerStore) InsertBulk(_ context.Context, customers []*domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		if c == nil || c.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[c.ID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[c.ID] = struct{}{}
		if _, exists := s.data[c.ID]; exists {
			return storage.ErrDuplicateKey
		}
	}

	for _, c := range customers {
		customerCopy := *c
		s.data[c.ID] = &customerCopy
	}
	return nil
}

// GetByID retrieves a customer by ID. Returns ErrNotFound if not exists.
func (s *CustomerStore) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	customerCopy := *c
	return &customerCopy, nil
}

// GetAll retrieves all customers, ordered by ID ASC.
func (s *CustomerStore) GetAll(_ context.Context) ([]*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Customer, 0, len(s.data))
	for _, c := range s.data {
		customerCopy := *c
		result = append(result, &customerCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Count returns the number of stored customers.
func (s *CustomerStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// Verify interface compliance at compile time.
var _ storage.CustomerStore = (*CustomerStore)(nil)
