package cli

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cartstore/internal/config"
	"github.com/nikolayk812/cartstore/internal/port"
	"github.com/nikolayk812/cartstore/internal/repository"
	"github.com/redis/go-redis/v9"
)

// openStorage connects the configured backend. The returned func releases its handles.
func openStorage(ctx context.Context, cfg config.Config) (port.CartStorage, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return repository.NewMemory(), func() error { return nil }, nil

	case config.BackendSQLite:
		conn, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.OpenSQLite: %w", err)
		}
		return repository.NewSQLite(conn), conn.Close, nil

	case config.BackendPostgres:
		pool, err := repository.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.OpenPostgres: %w", err)
		}
		return repository.NewPostgres(pool), func() error { pool.Close(); return nil }, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		return repository.NewRedis(client), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("backend[%s] is not supported", cfg.Backend)
	}
}
