package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// runStorageContract checks the behavior every port.CartStorage backend shares.
func runStorageContract(t *testing.T, storage port.CartStorage) {
	t.Helper()

	t.Run("load unknown namespace: empty", func(t *testing.T) {
		state, err := storage.Load(t.Context(), gofakeit.UUID())
		require.NoError(t, err)
		assert.Empty(t, state.Items)
	})

	t.Run("save then load: order and content preserved", func(t *testing.T) {
		ctx := t.Context()
		namespace := gofakeit.UUID()
		want := randomState(domain.MaxItems)
		want.Items[1].Price = domain.Money{}

		require.NoError(t, storage.Save(ctx, namespace, want))

		got, err := storage.Load(ctx, namespace)
		require.NoError(t, err)
		assertState(t, want, got)
	})

	t.Run("save then load: price precision preserved", func(t *testing.T) {
		ctx := t.Context()
		namespace := gofakeit.UUID()

		want := randomState(3)
		want.Items[0].Price.Amount = decimal.RequireFromString("19.999")
		want.Items[1].Price.Amount = decimal.RequireFromString("12345678901234.5")
		want.Items[2].Price.Amount = decimal.RequireFromString("0.0001")

		require.NoError(t, storage.Save(ctx, namespace, want))

		got, err := storage.Load(ctx, namespace)
		require.NoError(t, err)
		require.Len(t, got.Items, 3)
		for i := range want.Items {
			assert.Equal(t, want.Items[i].Price.Amount.String(), got.Items[i].Price.Amount.String())
		}
	})

	t.Run("save replaces previous snapshot: ok", func(t *testing.T) {
		ctx := t.Context()
		namespace := gofakeit.UUID()

		require.NoError(t, storage.Save(ctx, namespace, randomState(5)))

		want := randomState(2)
		require.NoError(t, storage.Save(ctx, namespace, want))

		got, err := storage.Load(ctx, namespace)
		require.NoError(t, err)
		assertState(t, want, got)
	})

	t.Run("save empty state: ok", func(t *testing.T) {
		ctx := t.Context()
		namespace := gofakeit.UUID()

		require.NoError(t, storage.Save(ctx, namespace, randomState(3)))
		require.NoError(t, storage.Save(ctx, namespace, domain.CartState{}))

		got, err := storage.Load(ctx, namespace)
		require.NoError(t, err)
		assert.Empty(t, got.Items)
	})

	t.Run("namespaces are isolated: ok", func(t *testing.T) {
		ctx := t.Context()
		first, second := gofakeit.UUID(), gofakeit.UUID()
		firstState, secondState := randomState(1), randomState(2)

		require.NoError(t, storage.Save(ctx, first, firstState))
		require.NoError(t, storage.Save(ctx, second, secondState))

		got, err := storage.Load(ctx, first)
		require.NoError(t, err)
		assertState(t, firstState, got)
	})

	t.Run("empty namespace: error", func(t *testing.T) {
		ctx := t.Context()

		_, err := storage.Load(ctx, "")
		require.EqualError(t, err, "namespace is empty")

		err = storage.Save(ctx, "", randomState(1))
		require.EqualError(t, err, "namespace is empty")
	})
}

func randomState(n int) domain.CartState {
	var state domain.CartState
	for range n {
		state.Items = append(state.Items, randomEntry())
	}
	return state
}

func randomEntry() domain.CartEntry {
	return domain.CartEntry{
		ID:        uuid.NewString(),
		Title:     gofakeit.Name(),
		Image:     gofakeit.URL(),
		Price:     randomMoney(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func assertState(t *testing.T, expected, actual domain.CartState) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	diff := cmp.Diff(expected.Items, actual.Items, currencyComparer)
	assert.Empty(t, diff)
}
