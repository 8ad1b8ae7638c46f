package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/shopspring/decimal"
)

// snapshotVersion is written into every encoded snapshot.
// Version 0 snapshots carry no version field and decode the same way.
const snapshotVersion = 1

type snapshot struct {
	State   snapshotState `json:"state"`
	Version int           `json:"version"`
}

type snapshotState struct {
	Items []snapshotEntry `json:"items"`
}

type snapshotEntry struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Image     string         `json:"image"`
	Price     *snapshotPrice `json:"price,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitzero"`
}

type snapshotPrice struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func encodeSnapshot(state domain.CartState) ([]byte, error) {
	s := snapshot{
		State:   snapshotState{Items: make([]snapshotEntry, 0, len(state.Items))},
		Version: snapshotVersion,
	}

	for _, item := range state.Items {
		entry := snapshotEntry{
			ID:        item.ID,
			Title:     item.Title,
			Image:     item.Image,
			CreatedAt: item.CreatedAt,
		}

		if !item.Price.IsZero() {
			entry.Price = &snapshotPrice{
				Amount:   item.Price.Amount,
				Currency: item.Price.Currency.String(),
			}
		}

		s.State.Items = append(s.State.Items, entry)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

func decodeSnapshot(data []byte) (domain.CartState, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.CartState{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if s.Version > snapshotVersion {
		return domain.CartState{}, fmt.Errorf("snapshot version[%d] is not supported", s.Version)
	}

	var items []domain.CartEntry

	for _, entry := range s.State.Items {
		item := domain.CartEntry{
			ID:        entry.ID,
			Title:     entry.Title,
			Image:     entry.Image,
			CreatedAt: entry.CreatedAt,
		}

		if entry.Price != nil {
			price, err := mapPriceToDomain(entry.Price.Amount.String(), entry.Price.Currency)
			if err != nil {
				return domain.CartState{}, fmt.Errorf("mapPriceToDomain: %w", err)
			}
			item.Price = price
		}

		items = append(items, item)
	}

	return domain.CartState{Items: items}, nil
}
