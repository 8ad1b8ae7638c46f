package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// IsZero reports whether m carries no currency, i.e. the entry is unpriced.
func (m Money) IsZero() bool {
	return m.Currency == currency.Unit{}
}
