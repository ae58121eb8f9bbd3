package domain

import "github.com/shopspring/decimal"

// Money is a decimal amount paired with an ISO 4217 currency code, matching
// the wire format of the commerce API (amounts travel as decimal strings).
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// Zero returns a zero amount in the given currency.
func Zero(currencyCode string) Money {
	return Money{Amount: decimal.Zero, CurrencyCode: currencyCode}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}
