package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func sampleCart() *Cart {
	tax := Money{Amount: decimal.RequireFromString("4.00"), CurrencyCode: "USD"}
	return &Cart{
		ID:            "c1",
		CheckoutURL:   "https://shop.example.com/checkout/c1",
		TotalQuantity: 2,
		Cost: CartCost{
			Subtotal: Money{Amount: decimal.RequireFromString("50.00"), CurrencyCode: "USD"},
			Total:    Money{Amount: decimal.RequireFromString("54.00"), CurrencyCode: "USD"},
			Tax:      &tax,
		},
		Lines: []CartLine{{
			ID:       "l1",
			Quantity: 2,
			Cost:     Money{Amount: decimal.RequireFromString("50.00"), CurrencyCode: "USD"},
			Merchandise: Merchandise{
				ID:              "v1",
				Title:           "500g",
				Price:           Money{Amount: decimal.RequireFromString("25.00"), CurrencyCode: "USD"},
				SelectedOptions: []SelectedOption{{Name: "Size", Value: "500g"}},
			},
		}},
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleCart()
	clone := original.Clone()

	clone.ID = "tampered"
	clone.Lines[0].Quantity = 99
	clone.Lines[0].Merchandise.SelectedOptions[0].Value = "1kg"
	*clone.Cost.Tax = Money{Amount: decimal.RequireFromString("9.99"), CurrencyCode: "USD"}

	if original.ID != "c1" {
		t.Fatal("clone shares top-level fields")
	}
	if original.Lines[0].Quantity != 2 {
		t.Fatal("clone shares line slice")
	}
	if original.Lines[0].Merchandise.SelectedOptions[0].Value != "500g" {
		t.Fatal("clone shares selected options")
	}
	if !original.Cost.Tax.Amount.Equal(decimal.RequireFromString("4.00")) {
		t.Fatal("clone shares cost pointers")
	}
}

func TestCloneNilReceiver(t *testing.T) {
	var cart *Cart
	if cart.Clone() != nil {
		t.Fatal("nil cart must clone to nil")
	}
}

func TestLineLookups(t *testing.T) {
	cart := sampleCart()

	if line := cart.LineByID("l1"); line == nil || line.Merchandise.ID != "v1" {
		t.Fatalf("LineByID failed: %+v", line)
	}
	if cart.LineByID("missing") != nil {
		t.Fatal("LineByID should miss")
	}
	if line := cart.LineByMerchandise("v1"); line == nil || line.ID != "l1" {
		t.Fatalf("LineByMerchandise failed: %+v", line)
	}

	var nilCart *Cart
	if nilCart.LineByID("l1") != nil || nilCart.LineByMerchandise("v1") != nil {
		t.Fatal("nil cart lookups must miss")
	}
}

func TestMoneyZero(t *testing.T) {
	zero := Zero("EUR")
	if !zero.Amount.IsZero() || zero.CurrencyCode != "EUR" {
		t.Fatalf("unexpected zero money: %+v", zero)
	}
	if !zero.IsZero() {
		t.Fatal("zero money must report IsZero")
	}
	if (Money{Amount: decimal.RequireFromString("0.01"), CurrencyCode: "EUR"}).IsZero() {
		t.Fatal("non-zero money must not report IsZero")
	}
}
