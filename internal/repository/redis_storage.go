package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client redis.Cmdable
}

// NewRedis stores snapshots as JSON strings without expiration.
func NewRedis(client redis.Cmdable) port.CartStorage {
	return &redisStorage{
		client: client,
	}
}

func (r *redisStorage) Load(ctx context.Context, namespace string) (domain.CartState, error) {
	if namespace == "" {
		return domain.CartState{}, fmt.Errorf("namespace is empty")
	}

	data, err := r.client.Get(ctx, redisKey(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CartState{}, nil
	}
	if err != nil {
		return domain.CartState{}, fmt.Errorf("client.Get: %w", err)
	}

	state, err := decodeSnapshot(data)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("decodeSnapshot: %w", err)
	}

	return state, nil
}

func (r *redisStorage) Save(ctx context.Context, namespace string, state domain.CartState) error {
	if namespace == "" {
		return fmt.Errorf("namespace is empty")
	}

	data, err := encodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("encodeSnapshot: %w", err)
	}

	if err := r.client.Set(ctx, redisKey(namespace), data, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func redisKey(namespace string) string {
	return fmt.Sprintf("cart:%s", namespace)
}
