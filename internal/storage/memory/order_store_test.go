package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
	"github.com/julianhilgemann/BI-Pipeline/internal/storage"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrderStore_InsertBulkAndGetByID(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	orders := []*domain.Order{
		{OrderID: "o1", CustomerID: "c1", ShopID: "DE", OrderDate: day(2024, 1, 2), CurrencyCode: "EUR"},
		{OrderID: "o2", CustomerID: "c2", ShopID: "AT", OrderDate: day(2024, 1, 3), CurrencyCode: "EUR"},
	}
	if err := s.InsertBulk(ctx, orders); err != nil {
		t.Fatalf("InsertBulk() error: %v", err)
	}

	got, err := s.GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.ShopID != "DE" || got.CustomerID != "c1" {
		t.Errorf("GetByID() = %+v, want o1 fields", got)
	}

	if _, err := s.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderStore_DuplicateRejected(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	o := &domain.Order{OrderID: "o1", ShopID: "DE", OrderDate: day(2024, 1, 2)}
	if err := s.InsertBulk(ctx, []*domain.Order{o}); err != nil {
		t.Fatalf("InsertBulk() error: %v", err)
	}
	if err := s.InsertBulk(ctx, []*domain.Order{o}); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}

	// Intra-batch duplicate fails the whole batch.
	batch := []*domain.Order{
		{OrderID: "o2", ShopID: "DE", OrderDate: day(2024, 1, 2)},
		{OrderID: "o2", ShopID: "DE", OrderDate: day(2024, 1, 2)},
	}
	if err := s.InsertBulk(ctx, batch); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey for intra-batch duplicate, got %v", err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Count() = %d after failed batch, want 1", n)
	}
}

func TestOrderStore_GetByShopAndDateRange(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	orders := []*domain.Order{
		{OrderID: "o1", ShopID: "DE", OrderDate: day(2024, 1, 1)},
		{OrderID: "o2", ShopID: "DE", OrderDate: day(2024, 1, 15)},
		{OrderID: "o3", ShopID: "DE", OrderDate: day(2024, 2, 1)},
		{OrderID: "o4", ShopID: "CH", OrderDate: day(2024, 1, 15)},
	}
	if err := s.InsertBulk(ctx, orders); err != nil {
		t.Fatalf("InsertBulk() error: %v", err)
	}

	got, err := s.GetByShopAndDateRange(ctx, "DE", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("GetByShopAndDateRange() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d orders, want 2", len(got))
	}
	if got[0].OrderID != "o1" || got[1].OrderID != "o2" {
		t.Errorf("orders not sorted by date: %s, %s", got[0].OrderID, got[1].OrderID)
	}
}

func TestOrderStore_CopiesOnReadAndWrite(t *testing.T) {
	s := NewOrderStore()
	ctx := context.Background()

	o := &domain.Order{OrderID: "o1", ShopID: "DE", OrderDate: day(2024, 1, 2)}
	if err := s.InsertBulk(ctx, []*domain.Order{o}); err != nil {
		t.Fatalf("InsertBulk() error: %v", err)
	}

	// Mutating the inserted struct must not affect the store.
	o.ShopID = "XX"
	got, err := s.GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.ShopID != "DE" {
		t.Errorf("store leaked caller mutation: shop = %s", got.ShopID)
	}

	// Mutating the returned struct must not affect the store either.
	got.ShopID = "YY"
	again, _ := s.GetByID(ctx, "o1")
	if again.ShopID != "DE" {
		t.Errorf("store leaked reader mutation: shop = %s", again.ShopID)
	}
}
