package seed

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/aumos-platform/testbed/platform/go/logging"
	"github.com/aumos-platform/testbed/platform/go/persistence"
	"github.com/aumos-platform/testbed/platform/go/seeding"
)

type config struct {
	DatabaseURL    string `env:"AUMOS_DATABASE_URL"`
	KafkaBrokers   string `env:"AUMOS_KAFKA_BOOTSTRAP_SERVERS"`
	MinioEndpoint  string `env:"AUMOS_MINIO_ENDPOINT"`
	MinioAccessKey string `env:"AUMOS_MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinioSecretKey string `env:"AUMOS_MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinioUseSSL    bool   `env:"AUMOS_MINIO_USE_SSL" envDefault:"false"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

// Command seeds the fixed integration test data (3 tenants, 15 users) plus
// optional Kafka topics and object-storage buckets. Idempotent: a repeat
// run converges to the same state.
func Command() *cobra.Command {
	var (
		databaseURL   string
		kafkaBrokers  string
		minioEndpoint string
		skipBootstrap bool
	)

	c := &cobra.Command{
		Use:   "seed",
		Short: "Seed deterministic integration test data (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var cfg config
			if err := env.Parse(&cfg); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if databaseURL != "" {
				cfg.DatabaseURL = databaseURL
			}
			if kafkaBrokers != "" {
				cfg.KafkaBrokers = kafkaBrokers
			}
			if minioEndpoint != "" {
				cfg.MinioEndpoint = minioEndpoint
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("database url is required (--database-url or AUMOS_DATABASE_URL)")
			}

			logger, err := logging.NewLogger(logging.Config{Component: "seed-cli", Level: cfg.LogLevel})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: cfg.DatabaseURL})
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}
			defer persistence.ClosePool(pool)

			if !skipBootstrap {
				if err := persistence.BootstrapSchema(ctx, pool); err != nil {
					return fmt.Errorf("bootstrap schema: %w", err)
				}
			}

			seeder, err := seeding.NewSeeder(pool, seeding.Config{
				KafkaBrokers:   cfg.KafkaBrokers,
				MinioEndpoint:  cfg.MinioEndpoint,
				MinioAccessKey: cfg.MinioAccessKey,
				MinioSecretKey: cfg.MinioSecretKey,
				MinioUseSSL:    cfg.MinioUseSSL,
			}, logger)
			if err != nil {
				return fmt.Errorf("init seeder: %w", err)
			}

			res, err := seeder.SeedAll(ctx)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeding complete: tenants=%d users=%d kafka_topics=%d buckets=%d\n",
				res.Tenants, res.Users, res.KafkaTopics, res.Buckets)
			return nil
		},
	}

	c.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string")
	c.Flags().StringVar(&kafkaBrokers, "kafka-brokers", "", "Kafka bootstrap servers (empty to skip topic seeding)")
	c.Flags().StringVar(&minioEndpoint, "minio-endpoint", "", "MinIO endpoint host:port (empty to skip bucket seeding)")
	c.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "Skip applying the baseline schema before seeding")
	return c
}
