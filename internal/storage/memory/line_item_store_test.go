package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

func TestLineItemStore_PreservesInsertionOrder(t *testing.T) {
	s := NewLineItemStore()
	ctx := context.Background()

	lines := []*domain.LineItem{
		{LineID: "l3", OrderID: "o1", SKU: 10002, Qty: 1},
		{LineID: "l1", OrderID: "o1", SKU: 10000, Qty: 1},
		{LineID: "l2", OrderID: "o2", SKU: 10001, Qty: 1},
	}
	if err := s.InsertBulk(ctx, lines); err != nil {
		t.Fatalf("InsertBulk() error: %v", err)
	}

	got, err := s.GetByOrderID(ctx, "o1")
	if err != nil {
		t.Fatalf("GetByOrderID() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d lines for o1, want 2", len(got))
	}
	// Insertion order, not ID order: l3 was appended before l1.
	if got[0].LineID != "l3" || got[1].LineID != "l1" {
		t.Errorf("lines out of insertion order: %s, %s", got[0].LineID, got[1].LineID)
	}
}

func TestLineItemStore_DuplicateLineID(t *testing.T) {
	s := NewLineItemStore()
	ctx := context.Background()

	l := &domain.LineItem{LineID: "l1", OrderID: "o1", SKU: 10000, Qty: 1}
	if err := s.InsertBulk(ctx, []*domain.LineItem{l}); err != nil {
		t.Fatalf("InsertBulk() error: %v", err)
	}
	if err := s.InsertBulk(ctx, []*domain.LineItem{l}); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestLineItemStore_InvalidInput(t *testing.T) {
	s := NewLineItemStore()
	ctx := context.Background()

	err := s.InsertBulk(ctx, []*domain.LineItem{{OrderID: "o1"}})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty line id, got %v", err)
	}
}
