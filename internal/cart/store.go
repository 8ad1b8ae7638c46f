// Package cart holds the cart state owned by a single user session.
//
// A Store keeps an ordered list of distinct entries capped at domain.MaxItems.
// Every mutation is written through a port.CartStorage under the store namespace,
// and Open restores the last written snapshot.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/port"
)

var (
	ErrClosed = errors.New("cart store is closed")

	// ErrPersist wraps storage failures. The in-memory mutation is kept.
	ErrPersist = errors.New("cart state not persisted")
)

type Store struct {
	storage   port.CartStorage
	namespace string
	logger    *slog.Logger
	now       func() time.Time

	mu     sync.Mutex
	state  domain.CartState
	closed bool
}

type Option func(*Store)

func WithNamespace(namespace string) Option {
	return func(s *Store) {
		s.namespace = namespace
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the time source stamping CreatedAt on added entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open restores the persisted state of the namespace and returns a ready Store.
// Restored state breaking the cart invariants is normalized.
func Open(ctx context.Context, storage port.CartStorage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}

	s := &Store{
		storage:   storage,
		namespace: domain.DefaultNamespace,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.namespace == "" {
		return nil, fmt.Errorf("namespace is empty")
	}

	state, err := storage.Load(ctx, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("storage.Load: %w", err)
	}

	state, dropped := state.Normalize()
	if dropped > 0 {
		s.logger.Warn("restored cart normalized",
			"namespace", s.namespace,
			"dropped", dropped,
			"items", state.Len())
	}
	s.state = state

	return s, nil
}

// Add appends entry unless its ID is already present or the cart is full.
// Only AddOK mutates the cart and writes it to storage.
func (s *Store) Add(ctx context.Context, entry domain.CartEntry) (domain.AddResult, error) {
	if entry.ID == "" {
		return domain.AddUnknown, fmt.Errorf("entry ID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.AddUnknown, ErrClosed
	}

	if s.state.Contains(entry.ID) {
		return domain.AddDuplicate, nil
	}
	if s.state.Len() >= domain.MaxItems {
		return domain.AddLimit, nil
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	}
	s.state.Items = append(s.state.Items, entry)

	return domain.AddOK, s.persist(ctx)
}

// Remove deletes the entry with the given ID. An unknown ID is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.state.Items = slices.DeleteFunc(s.state.Items, func(item domain.CartEntry) bool {
		return item.ID == id
	})

	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.state = domain.CartState{}

	return s.persist(ctx)
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []domain.CartEntry {
	return s.State().Items
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Len()
}

func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

func (s *Store) Namespace() string {
	return s.namespace
}

// Close ends the store lifecycle. Later mutations return ErrClosed, reads keep working.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.namespace, s.state.Clone()); err != nil {
		s.logger.Error("persist cart",
			"namespace", s.namespace,
			"items", s.state.Len(),
			"error", err)
		return fmt.Errorf("%w: storage.Save: %w", ErrPersist, err)
	}

	return nil
}
