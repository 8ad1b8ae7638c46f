package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	// MaxItems is the capacity of a cart.
	MaxItems = 10

	DefaultNamespace = "cart-storage"
)

type CartEntry struct {
	ID    string
	Title string
	Image string

	// Price is optional, zero Money means unpriced.
	Price Money

	CreatedAt time.Time
}

type CartState struct {
	Items []CartEntry
}

func (s CartState) Len() int {
	return len(s.Items)
}

func (s CartState) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

func (s CartState) indexOf(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s CartState) Clone() CartState {
	if s.Items == nil {
		return CartState{}
	}

	items := make([]CartEntry, len(s.Items))
	copy(items, s.Items)

	return CartState{Items: items}
}

// Normalize drops entries without an ID or repeating an earlier ID, and truncates the result to MaxItems.
// It returns the normalized state and the number of dropped entries.
func (s CartState) Normalize() (CartState, int) {
	var (
		items   []CartEntry
		seen    = make(map[string]struct{}, len(s.Items))
		dropped int
	)

	for _, item := range s.Items {
		if _, ok := seen[item.ID]; ok || item.ID == "" || len(items) >= MaxItems {
			dropped++
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	return CartState{Items: items}, dropped
}

// Subtotals sums priced entries per currency, in order of first appearance.
func (s CartState) Subtotals() []Money {
	var (
		result []Money
		index  = make(map[currency.Unit]int)
	)

	for _, item := range s.Items {
		if item.Price.IsZero() {
			continue
		}

		i, ok := index[item.Price.Currency]
		if !ok {
			index[item.Price.Currency] = len(result)
			result = append(result, Money{Amount: decimal.Zero, Currency: item.Price.Currency})
			i = len(result) - 1
		}

		result[i].Amount = result[i].Amount.Add(item.Price.Amount)
	}

	return result
}
