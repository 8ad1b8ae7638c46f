package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/port"

	_ "modernc.org/sqlite"
)

var sqlitePragmas = []string{
	"PRAGMA foreign_keys=ON",
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=10000",
	"PRAGMA synchronous=NORMAL",
}

// OpenSQLite opens the database at path, creating parent directories when missing,
// and applies the sqlite migrations.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// a single writer keeps in-memory databases on one connection
	conn.SetMaxOpenConns(1)

	for _, pragma := range sqlitePragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("conn.ExecContext: %w", err)
		}
	}

	if err := migrateSQLite(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrateSQLite: %w", err)
	}

	return conn, nil
}

type sqliteStorage struct {
	conn *sql.DB
}

func NewSQLite(conn *sql.DB) port.CartStorage {
	return &sqliteStorage{
		conn: conn,
	}
}

func (r *sqliteStorage) Load(ctx context.Context, namespace string) (domain.CartState, error) {
	if namespace == "" {
		return domain.CartState{}, fmt.Errorf("namespace is empty")
	}

	rows, err := r.conn.QueryContext(ctx,
		`SELECT entry_id, title, image, price_amount, price_currency, created_at
		FROM cart_entries
		WHERE namespace = ?
		ORDER BY position`, namespace)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("conn.QueryContext: %w", err)
	}
	defer rows.Close()

	var items []domain.CartEntry

	for rows.Next() {
		var (
			item          domain.CartEntry
			amount, unit  string
			createdMicros int64
		)

		if err := rows.Scan(&item.ID, &item.Title, &item.Image, &amount, &unit, &createdMicros); err != nil {
			return domain.CartState{}, fmt.Errorf("rows.Scan: %w", err)
		}

		item.Price, err = mapPriceToDomain(amount, unit)
		if err != nil {
			return domain.CartState{}, fmt.Errorf("mapPriceToDomain: %w", err)
		}
		item.CreatedAt = fromUnixMicro(createdMicros)

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.CartState{}, fmt.Errorf("rows.Err: %w", err)
	}

	return domain.CartState{Items: items}, nil
}

func (r *sqliteStorage) Save(ctx context.Context, namespace string, state domain.CartState) error {
	if namespace == "" {
		return fmt.Errorf("namespace is empty")
	}

	err := withSQLTx(ctx, r.conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_entries WHERE namespace = ?`, namespace); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}

		for i, item := range state.Items {
			amount, unit := mapPriceFromDomain(item.Price)

			_, err := tx.ExecContext(ctx,
				`INSERT INTO cart_entries (namespace, position, entry_id, title, image, price_amount, price_currency, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				namespace, i, item.ID, item.Title, item.Image, amount.String(), unit, unixMicro(item.CreatedAt))
			if err != nil {
				return fmt.Errorf("insert entry[%s]: %w", item.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("withSQLTx: %w", err)
	}

	return nil
}
