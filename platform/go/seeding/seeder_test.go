package seeding

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/aumos-platform/testbed/platform/go/persistence"
)

// startSeedPool launches a disposable PostgreSQL container with the
// baseline schema applied. Seeding runs under the admin identity; the
// tenants and test_users tables carry no row security.
func startSeedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping seeding integration test in short mode")
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

	connString, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: connString})
	require.NoError(t, err)
	t.Cleanup(func() { persistence.ClosePool(pool) })

	require.NoError(t, persistence.BootstrapSchema(ctx, pool))

	return pool
}

func TestSeedAllIsIdempotent(t *testing.T) {
	t.Parallel()

	pool := startSeedPool(t)
	ctx := context.Background()

	seeder, err := NewSeeder(pool, Config{}, zap.NewNop())
	require.NoError(t, err)

	first, err := seeder.SeedAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, first.Tenants)
	require.Equal(t, 15, first.Users)
	require.Zero(t, first.KafkaTopics)
	require.Zero(t, first.Buckets)

	second, err := seeder.SeedAll(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Re-running converged: no duplicates in storage.
	var tenantRows, userRows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&tenantRows))
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM test_users`).Scan(&userRows))
	require.Equal(t, 3, tenantRows)
	require.Equal(t, 15, userRows)
}

func TestSeedTenantsUpsertsFixedRows(t *testing.T) {
	t.Parallel()

	pool := startSeedPool(t)
	ctx := context.Background()

	seeder, err := NewSeeder(pool, Config{}, nil)
	require.NoError(t, err)

	count, err := seeder.SeedTenants(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	// Drift the display name, then re-seed: the fixed fixture wins.
	_, err = pool.Exec(ctx, `UPDATE tenants SET name = 'renamed out of band' WHERE id = $1`, string(TenantAlphaID))
	require.NoError(t, err)

	_, err = seeder.SeedTenants(ctx)
	require.NoError(t, err)

	var name, slug string
	require.NoError(t, pool.QueryRow(ctx, `SELECT name, slug FROM tenants WHERE id = $1`, string(TenantAlphaID)).Scan(&name, &slug))
	require.Equal(t, TenantAlphaName, name)
	require.Equal(t, TenantAlphaSlug, slug)
}

func TestSeedUsersEnforcesPrivilegeRange(t *testing.T) {
	t.Parallel()

	pool := startSeedPool(t)
	ctx := context.Background()

	seeder, err := NewSeeder(pool, Config{}, nil)
	require.NoError(t, err)

	count, err := seeder.SeedUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 15, count)

	// The schema check constraint rejects out-of-range privilege levels.
	_, err = pool.Exec(ctx, `
        INSERT INTO test_users (id, tenant_id, username, email, privilege_level)
        VALUES ('ffffffff-0000-0000-0000-000000000001', $1, 'rogue', 'rogue@alpha.test', 6)
    `, string(TenantAlphaID))
	require.Error(t, err)

	var perTenant int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM test_users WHERE tenant_id = $1`, string(TenantAlphaID)).Scan(&perTenant))
	require.Equal(t, 5, perTenant)
}

func TestSeedAllDegradesWhenOptionalTargetsUnreachable(t *testing.T) {
	t.Parallel()

	pool := startSeedPool(t)
	ctx := context.Background()

	// Ports nobody listens on: optional steps must log, return zero, and
	// leave the mandatory tenant/user seed intact.
	seeder, err := NewSeeder(pool, Config{
		KafkaBrokers:   "127.0.0.1:1",
		MinioEndpoint:  "127.0.0.1:1",
		MinioAccessKey: "minioadmin",
		MinioSecretKey: "minioadmin",
	}, zap.NewNop())
	require.NoError(t, err)

	res, err := seeder.SeedAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, res.Tenants)
	require.Equal(t, 15, res.Users)
	require.Zero(t, res.KafkaTopics)
	require.Zero(t, res.Buckets)
}
