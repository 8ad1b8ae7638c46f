package port

import (
	"context"

	"github.com/nikolayk812/cartstore/internal/domain"
)

// CartStorage persists cart snapshots under a namespace key.
// Load of an unknown namespace returns an empty state.
type CartStorage interface {
	Load(ctx context.Context, namespace string) (domain.CartState, error)
	Save(ctx context.Context, namespace string, state domain.CartState) error
}
