package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"storefront-gateway/internal/domain"
)

func testCart(id string) *domain.Cart {
	return &domain.Cart{
		ID:            id,
		CheckoutURL:   "https://shop.example.com/checkout/" + id,
		TotalQuantity: 1,
		Cost: domain.CartCost{
			Subtotal: domain.Money{Amount: decimal.RequireFromString("25.00"), CurrencyCode: "USD"},
			Total:    domain.Money{Amount: decimal.RequireFromString("25.00"), CurrencyCode: "USD"},
		},
		Lines: []domain.CartLine{{
			ID:       "l1",
			Quantity: 1,
			Cost:     domain.Money{Amount: decimal.RequireFromString("25.00"), CurrencyCode: "USD"},
			Merchandise: domain.Merchandise{
				ID:    "v1",
				Price: domain.Money{Amount: decimal.RequireFromString("25.00"), CurrencyCode: "USD"},
			},
		}},
	}
}

func TestMemorySaveLoadDelete(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	if _, err := repo.Load(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown session, got %v", err)
	}

	if err := repo.Save(ctx, "s1", testCart("c1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != "c1" || len(loaded.Lines) != 1 {
		t.Fatalf("unexpected snapshot: %+v", loaded)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryIsolatesCallersFromStoredState(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	original := testCart("c1")
	if err := repo.Save(ctx, "s1", original); err != nil {
		t.Fatalf("save: %v", err)
	}
	original.Lines[0].Quantity = 99

	loaded, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Lines[0].Quantity != 1 {
		t.Fatal("repository must store a copy, not the caller's pointer")
	}

	loaded.ID = "tampered"
	again, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if again.ID != "c1" {
		t.Fatal("loaded snapshots must be copies")
	}
}
