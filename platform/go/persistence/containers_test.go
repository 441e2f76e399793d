package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	testAppRole     = "aumos_app"
	testAppPassword = "aumos_app"
)

// startTestPools launches a disposable PostgreSQL container, applies the
// baseline schema as the admin identity, provisions the NOBYPASSRLS
// application role, and returns pools for both identities. Row security is
// only meaningful through the application pool; the admin pool exists for
// out-of-band assertions. Skipped in short mode.
func startTestPools(t *testing.T, appCfg PoolConfig) (appPool, adminPool *pgxpool.Pool) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("aumos"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("5432/tcp").WithStartupTimeout(2*time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	adminConnString, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	adminPool, err = NewPool(ctx, PoolConfig{ConnString: adminConnString})
	require.NoError(t, err)
	t.Cleanup(func() { ClosePool(adminPool) })

	require.NoError(t, BootstrapSchema(ctx, adminPool))
	require.NoError(t, ProvisionAppRole(ctx, adminPool, testAppRole, testAppPassword))

	appCfg.ConnString = strings.Replace(adminConnString, "postgres:postgres@", testAppRole+":"+testAppPassword+"@", 1)
	appPool, err = NewPool(ctx, appCfg)
	require.NoError(t, err)
	t.Cleanup(func() { ClosePool(appPool) })

	return appPool, adminPool
}
