package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartstore/internal/db"
	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/port"
)

type postgresStorage struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) port.CartStorage {
	return &postgresStorage{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewPostgresWithTx(tx pgx.Tx) port.CartStorage {
	return &postgresStorage{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *postgresStorage) Load(ctx context.Context, namespace string) (domain.CartState, error) {
	if namespace == "" {
		return domain.CartState{}, fmt.Errorf("namespace is empty")
	}

	rows, err := r.q.ListEntries(ctx, namespace)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("q.ListEntries: %w", err)
	}

	items, err := mapListEntriesRowsToDomain(rows)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("mapListEntriesRowsToDomain: %w", err)
	}

	return domain.CartState{Items: items}, nil
}

func (r *postgresStorage) Save(ctx context.Context, namespace string, state domain.CartState) error {
	if namespace == "" {
		return fmt.Errorf("namespace is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if _, err := q.DeleteEntries(ctx, namespace); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteEntries: %w", err)
		}

		for i, item := range state.Items {
			amount, unit := mapPriceFromDomain(item.Price)

			err := q.InsertEntry(ctx, db.InsertEntryParams{
				Namespace:     namespace,
				Position:      int32(i),
				EntryID:       item.ID,
				Title:         item.Title,
				Image:         item.Image,
				PriceAmount:   amount,
				PriceCurrency: unit,
				CreatedAt:     item.CreatedAt,
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.InsertEntry: %w", err)
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func mapListEntriesRowToDomain(row db.ListEntriesRow) (domain.CartEntry, error) {
	price, err := mapPriceToDomain(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("mapPriceToDomain: %w", err)
	}

	return domain.CartEntry{
		ID:        row.EntryID,
		Title:     row.Title,
		Image:     row.Image,
		Price:     price,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapListEntriesRowsToDomain(rows []db.ListEntriesRow) ([]domain.CartEntry, error) {
	var items []domain.CartEntry

	for _, row := range rows {
		item, err := mapListEntriesRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapListEntriesRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
