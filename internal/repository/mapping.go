package repository

import (
	"fmt"
	"time"

	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func mapPriceToDomain(amount, unit string) (domain.Money, error) {
	if unit == "" {
		return domain.Money{}, nil
	}

	parsedCurrency, err := currency.ParseISO(unit)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", unit, err)
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}

	return domain.Money{Amount: parsedAmount, Currency: parsedCurrency}, nil
}

// mapPriceFromDomain returns the amount and currency columns for m.
func mapPriceFromDomain(m domain.Money) (decimal.Decimal, string) {
	if m.IsZero() {
		return decimal.Zero, ""
	}

	return m.Amount, m.Currency.String()
}

func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func fromUnixMicro(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}
