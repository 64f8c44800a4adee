package memory

import (
	"context"
	"sync"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

// LineItemStore is an in-memory implementation of storage.LineItemStore.
// Lines keep insertion order, which preserves the factory's product
// selection order within each order.
type LineItemStore struct {
	mu    sync.RWMutex
	lines []*domain.LineItem
	byID  map[string]struct{}
}

// NewLineItemStore creates a new in-memory line item store.
func NewLineItemStore() *LineItemStore {
	return &LineItemStore{
		byID: make(map[string]struct{}),
	}
}

// InsertBulk adds multiple line items. Fails entire batch on duplicate line ID.
func (s *LineItemStore) InsertBulk(_ context.Context, lines []*domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l == nil || l.LineID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[l.LineID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[l.LineID] = struct{}{}
		if _, exists := s.byID[l.LineID]; exists {
			return storage.ErrDuplicateKey
		}
	}

	for _, l := range lines {
		lineCopy := *l
		s.lines = append(s.lines, &lineCopy)
		s.byID[l.LineID] = struct{}{}
	}
	return nil
}

// GetByOrderID retrieves an order's lines in insertion order.
func (s *LineItemStore) GetByOrderID(_ context.Context, orderID string) ([]*domain.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.LineItem
	for _, l := range s.lines {
		if l.OrderID == orderID {
			lineCopy := *l
			result = append(result, &lineCopy)
		}
	}
	return result, nil
}

// GetAll retrieves all line items in insertion order.
func (s *LineItemStore) GetAll(_ context.Context) ([]*domain.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.LineItem, 0, len(s.lines))
	for _, l := range s.lines {
		lineCopy := *l
		result = append(result, &lineCopy)
	}
	return result, nil
}

// Count returns the number of stored line items.
func (s *LineItemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines), nil
}

// Verify interface compliance at compile time.
var _ storage.LineItemStore = (*LineItemStore)(nil)
