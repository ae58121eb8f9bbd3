// Package pricing computes display values from a cart snapshot. Everything
// here is a pure function over *domain.Cart and is safe on a nil cart.
package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storefront-gateway/internal/domain"
)

// FormatMoney renders an amount as a localized currency string, e.g. "$ 149.00".
func FormatMoney(m domain.Money) string {
	unit, err := currency.ParseISO(m.CurrencyCode)
	if err != nil {
		return m.Amount.StringFixed(2) + " " + m.CurrencyCode
	}
	amount, _ := m.Amount.Float64()
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}

// FormatTotal renders the cart total; with no cart it renders a zero amount
// in the fallback currency.
func FormatTotal(cart *domain.Cart, fallbackCurrency string) string {
	if cart == nil {
		return FormatMoney(domain.Zero(fallbackCurrency))
	}
	return FormatMoney(cart.Cost.Total)
}

// Savings sums (compareAtPrice − price) × quantity over lines that carry a
// compare-at price above the selling price. A nil or undiscounted cart
// yields zero.
func Savings(cart *domain.Cart, fallbackCurrency string) domain.Money {
	currencyCode := fallbackCurrency
	total := decimal.Zero
	if cart != nil {
		if cart.Cost.Total.CurrencyCode != "" {
			currencyCode = cart.Cost.Total.CurrencyCode
		}
		for _, line := range cart.Lines {
			compareAt := line.Merchandise.CompareAtPrice
			if compareAt == nil {
				continue
			}
			diff := compareAt.Amount.Sub(line.Merchandise.Price.Amount)
			if diff.IsPositive() {
				total = total.Add(diff.Mul(decimal.NewFromInt(int64(line.Quantity))))
			}
		}
	}
	return domain.Money{Amount: total, CurrencyCode: currencyCode}
}

// ShippingPolicy holds the externally configured free-shipping threshold and
// flat rate.
type ShippingPolicy struct {
	FreeShippingThreshold decimal.Decimal
	FlatRate              decimal.Decimal
	Currency              string
}

// ShippingQuote reports whether the subtotal qualifies for free shipping,
// the applicable cost, and the remaining amount needed to qualify.
type ShippingQuote struct {
	FreeShipping    bool         `json:"freeShipping"`
	Cost            domain.Money `json:"cost"`
	AmountRemaining domain.Money `json:"amountRemaining"`
}

// Quote evaluates the policy against the cart subtotal. A subtotal equal to
// the threshold qualifies; a nil cart reports the full threshold remaining.
func (p ShippingPolicy) Quote(cart *domain.Cart) ShippingQuote {
	currencyCode := p.Currency
	subtotal := decimal.Zero
	if cart != nil {
		subtotal = cart.Cost.Subtotal.Amount
		if cart.Cost.Subtotal.CurrencyCode != "" {
			currencyCode = cart.Cost.Subtotal.CurrencyCode
		}
	}

	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return ShippingQuote{
			FreeShipping:    true,
			Cost:            domain.Zero(currencyCode),
			AmountRemaining: domain.Zero(currencyCode),
		}
	}
	return ShippingQuote{
		Cost:            domain.Money{Amount: p.FlatRate, CurrencyCode: currencyCode},
		AmountRemaining: domain.Money{Amount: p.FreeShippingThreshold.Sub(subtotal), CurrencyCode: currencyCode},
	}
}
