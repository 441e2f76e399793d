package seeding

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Result reports per-resource-kind counts after a seed pass, so callers can
// assert seed completeness.
type Result struct {
	Tenants     int `json:"tenants"`
	Users       int `json:"users"`
	KafkaTopics int `json:"kafka_topics"`
	Buckets     int `json:"buckets"`
}

// Config captures the targets of a seed pass. KafkaBrokers and
// MinioEndpoint are optional; empty values skip the corresponding step.
type Config struct {
	KafkaBrokers   string // host:port, empty to skip topic seeding
	MinioEndpoint  string // host:port, empty to skip bucket seeding
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// Seeder performs idempotent creation of the fixed tenant/user data plus
// optional Kafka topic and object-storage bucket scaffolding.
type Seeder struct {
	pool   *pgxpool.Pool
	cfg    Config
	logger *zap.Logger
}

func NewSeeder(pool *pgxpool.Pool, cfg Config, logger *zap.Logger) (*Seeder, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{pool: pool, cfg: cfg, logger: logger}, nil
}

// SeedAll runs every seed step. Tenant and user seeding is mandatory and
// fails the pass on error; topic and bucket seeding degrade to a zero count
// with a logged warning when their target is unavailable.
func (s *Seeder) SeedAll(ctx context.Context) (Result, error) {
	var res Result

	tenants, err := s.SeedTenants(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("seed tenants: %w", err)
	}
	res.Tenants = tenants

	users, err := s.SeedUsers(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("seed users: %w", err)
	}
	res.Users = users

	if s.cfg.KafkaBrokers != "" {
		res.KafkaTopics = s.seedKafkaTopics(ctx)
	}
	if s.cfg.MinioEndpoint != "" {
		res.Buckets = s.seedBuckets(ctx)
	}

	s.logger.Info("seed complete",
		zap.Int("tenants", res.Tenants),
		zap.Int("users", res.Users),
		zap.Int("kafka_topics", res.KafkaTopics),
		zap.Int("buckets", res.Buckets),
	)
	return res, nil
}

// SeedTenants upserts the 3 fixed tenants inside one transaction.
// Conflicting primary keys update non-key fields, so repeated runs converge
// to the same rows instead of erroring or duplicating.
func (s *Seeder) SeedTenants(ctx context.Context) (int, error) {
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		for _, t := range SeedTenants {
			if _, err := tx.Exec(ctx, `
                INSERT INTO tenants (id, name, slug)
                VALUES ($1, $2, $3)
                ON CONFLICT (id) DO UPDATE SET
                    name = EXCLUDED.name,
                    slug = EXCLUDED.slug
            `, string(t.ID), t.Name, t.Slug); err != nil {
				return fmt.Errorf("upsert tenant %s: %w", t.Slug, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("seeded tenants", zap.Int("count", len(SeedTenants)))
	return len(SeedTenants), nil
}

// SeedUsers upserts the 15 fixed users (5 per tenant, one per privilege
// level) inside one transaction.
func (s *Seeder) SeedUsers(ctx context.Context) (int, error) {
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		for _, u := range SeedUsers {
			if _, err := tx.Exec(ctx, `
                INSERT INTO test_users (id, tenant_id, username, email, privilege_level)
                VALUES ($1, $2, $3, $4, $5)
                ON CONFLICT (id) DO UPDATE SET
                    username = EXCLUDED.username,
                    email = EXCLUDED.email,
                    privilege_level = EXCLUDED.privilege_level
            `, u.ID, string(u.TenantID), u.Username, u.Email, int(u.Privilege)); err != nil {
				return fmt.Errorf("upsert user %s: %w", u.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("seeded users", zap.Int("count", len(SeedUsers)))
	return len(SeedUsers), nil
}

// seedKafkaTopics creates the standard topics through the cluster
// controller. Any failure is logged and converted into a zero count; the
// broker being down must never fail the mandatory seed path.
func (s *Seeder) seedKafkaTopics(ctx context.Context) int {
	conn, err := kafka.DialContext(ctx, "tcp", s.cfg.KafkaBrokers)
	if err != nil {
		s.logger.Warn("kafka unavailable, skipping topic seeding", zap.Error(err))
		return 0
	}
	defer conn.Close() // nolint:errcheck

	controller, err := conn.Controller()
	if err != nil {
		s.logger.Warn("kafka controller lookup failed, skipping topic seeding", zap.Error(err))
		return 0
	}

	controllerConn, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		s.logger.Warn("kafka controller unreachable, skipping topic seeding", zap.Error(err))
		return 0
	}
	defer controllerConn.Close() // nolint:errcheck

	created := 0
	for _, topic := range SeedTopics {
		err := controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic.Name,
			NumPartitions:     topic.Partitions,
			ReplicationFactor: topic.ReplicationFactor,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, kafka.TopicAlreadyExists):
			// idempotent re-run
		default:
			s.logger.Warn("create topic failed", zap.String("topic", topic.Name), zap.Error(err))
		}
	}

	s.logger.Info("kafka topic seeding complete", zap.Int("created", created))
	return created
}

// seedBuckets ensures one object-storage bucket per tenant. Failures are
// logged and skipped for the same reason as Kafka seeding.
func (s *Seeder) seedBuckets(ctx context.Context) int {
	client, err := minio.New(s.cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.cfg.MinioAccessKey, s.cfg.MinioSecretKey, ""),
		Secure: s.cfg.MinioUseSSL,
	})
	if err != nil {
		s.logger.Warn("minio unavailable, skipping bucket seeding", zap.Error(err))
		return 0
	}

	created := 0
	for _, id := range AllTenantIDs {
		bucket := BucketName(id)
		err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		if err != nil {
			resp := minio.ToErrorResponse(err)
			if resp.Code == "BucketAlreadyExists" || resp.Code == "BucketAlreadyOwnedByYou" {
				continue
			}
			s.logger.Warn("create bucket failed", zap.String("bucket", bucket), zap.Error(err))
			continue
		}
		created++
	}

	s.logger.Info("bucket seeding complete", zap.Int("created", created))
	return created
}

func (s *Seeder) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
