package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/nikolayk812/cartstore/migrations"
)

// OpenPostgres connects to dsn and applies the postgres migrations.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	if err := MigratePostgres(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("MigratePostgres: %w", err)
	}

	return pool, nil
}

// MigratePostgres applies pending postgres migrations through a connection borrowed from pool.
func MigratePostgres(pool *pgxpool.Pool) (err error) {
	conn := stdlib.OpenDBFromPool(pool)

	driver, err := pgxmigrate.WithInstance(conn, &pgxmigrate.Config{})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("pgxmigrate.WithInstance: %w", err)
	}

	m, err := newMigrate("postgres", "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return err
	}

	// the driver holds a pooled connection until closed
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			err = errors.Join(err, fmt.Errorf("m.Close: %w", errors.Join(sourceErr, dbErr)))
		}
	}()

	return up(m)
}

// migrateSQLite leaves conn open: closing the sqlite driver would close it.
func migrateSQLite(conn *sql.DB) error {
	driver, err := sqlitemigrate.WithInstance(conn, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("sqlitemigrate.WithInstance: %w", err)
	}

	m, err := newMigrate("sqlite", "sqlite", driver)
	if err != nil {
		return err
	}

	return up(m)
}

func newMigrate(dir, databaseName string, driver database.Driver) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithInstance: %w", err)
	}

	return m, nil
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	return nil
}
