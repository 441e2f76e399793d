package bootstrap

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aumos-platform/testbed/platform/go/logging"
	"github.com/aumos-platform/testbed/platform/go/persistence"
)

type config struct {
	DatabaseURL string `env:"AUMOS_DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Command applies the embedded baseline DDL: tenant registry, seeded users
// table, the tenant-scoped table with its row security policy, and the
// set_tenant_context function. Safe to run repeatedly.
func Command() *cobra.Command {
	var databaseURL string

	c := &cobra.Command{
		Use:   "bootstrap",
		Short: "Apply the baseline schema and row security policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var cfg config
			if err := env.Parse(&cfg); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if databaseURL != "" {
				cfg.DatabaseURL = databaseURL
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("database url is required (--database-url or AUMOS_DATABASE_URL)")
			}

			logger, err := logging.NewLogger(logging.Config{Component: "bootstrap-cli", Level: cfg.LogLevel})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: cfg.DatabaseURL})
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}
			defer persistence.ClosePool(pool)

			if err := persistence.BootstrapSchema(ctx, pool); err != nil {
				return fmt.Errorf("bootstrap schema: %w", err)
			}

			logger.Info("baseline schema applied", zap.String("table", persistence.RecordsTable))
			fmt.Fprintln(cmd.OutOrStdout(), "Bootstrap complete.")
			return nil
		},
	}

	c.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string")
	return c
}
