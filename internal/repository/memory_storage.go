package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/port"
)

// memoryStorage keeps encoded snapshots in process memory.
type memoryStorage struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemory() port.CartStorage {
	return &memoryStorage{
		snapshots: make(map[string][]byte),
	}
}

func (r *memoryStorage) Load(_ context.Context, namespace string) (domain.CartState, error) {
	if namespace == "" {
		return domain.CartState{}, fmt.Errorf("namespace is empty")
	}

	r.mu.RLock()
	data, ok := r.snapshots[namespace]
	r.mu.RUnlock()

	if !ok {
		return domain.CartState{}, nil
	}

	state, err := decodeSnapshot(data)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("decodeSnapshot: %w", err)
	}

	return state, nil
}

func (r *memoryStorage) Save(_ context.Context, namespace string, state domain.CartState) error {
	if namespace == "" {
		return fmt.Errorf("namespace is empty")
	}

	data, err := encodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("encodeSnapshot: %w", err)
	}

	r.mu.Lock()
	r.snapshots[namespace] = data
	r.mu.Unlock()

	return nil
}
