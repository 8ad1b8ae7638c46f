package repository_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/port"
	"github.com/nikolayk812/cartstore/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type postgresStorageSuite struct {
	suite.Suite

	storage   port.CartStorage
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

// entry point to run the tests in the suite
func TestPostgresStorageSuite(t *testing.T) {
	suite.Run(t, new(postgresStorageSuite))
}

// before all tests in the suite
func (suite *postgresStorageSuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = repository.OpenPostgres(ctx, connStr)
	suite.Require().NoError(err)

	suite.storage = repository.NewPostgres(suite.pool)
}

// after all tests in the suite
func (suite *postgresStorageSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *postgresStorageSuite) TestContract() {
	defer suite.deleteAll()

	runStorageContract(suite.T(), suite.storage)
}

func (suite *postgresStorageSuite) TestMigratePostgres_Idempotent() {
	t := suite.T()

	require.NoError(t, repository.MigratePostgres(suite.pool))

	var version int
	err := suite.pool.QueryRow(t.Context(), "SELECT version FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func (suite *postgresStorageSuite) TestOpenPostgres_EmptyDSN() {
	_, err := repository.OpenPostgres(suite.T().Context(), "")
	suite.EqualError(err, "dsn is empty")
}

func (suite *postgresStorageSuite) TestSaveWithTx() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		commit    bool
		wantItems int
	}{
		{
			name:      "save inside committed tx: visible",
			commit:    true,
			wantItems: 2,
		},
		{
			name:      "save inside rolled back tx: not visible",
			commit:    false,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()
			namespace := domain.DefaultNamespace + "-" + tt.name

			tx, err := suite.pool.Begin(ctx)
			require.NoError(t, err)

			err = repository.NewPostgresWithTx(tx).Save(ctx, namespace, randomState(2))
			require.NoError(t, err)

			if tt.commit {
				require.NoError(t, tx.Commit(ctx))
			} else {
				require.NoError(t, tx.Rollback(ctx))
			}

			state, err := suite.storage.Load(ctx, namespace)
			require.NoError(t, err)
			assert.Len(t, state.Items, tt.wantItems)
		})
	}
}

func (suite *postgresStorageSuite) TestSaveDuplicateIDs() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	entry := randomEntry()
	state := domain.CartState{Items: []domain.CartEntry{entry, randomEntry()}}
	require.NoError(t, suite.storage.Save(ctx, "dup", state))

	// primary key violation rolls the whole snapshot back
	broken := domain.CartState{Items: []domain.CartEntry{randomEntry(), entry, entry}}
	err := suite.storage.Save(ctx, "dup", broken)
	require.ErrorContains(t, err, "q.InsertEntry")

	got, err := suite.storage.Load(ctx, "dup")
	require.NoError(t, err)
	assertState(t, state, got)
}

func (suite *postgresStorageSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_entries CASCADE")
	suite.NoError(err)
}
