package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aumos-platform/testbed/platform/go/tenant"
)

// txBeginner exposes the minimal pgx pool behaviour needed by TenantDB.
type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TenantDB wraps a pgx pool to execute queries inside a transaction whose
// tenant context has been applied through the set_tenant_context database
// function. The context is set with set_config(..., is_local=TRUE), so it
// dies with the transaction and cannot leak across pooled-connection reuse.
type TenantDB struct {
	pool txBeginner
}

type TenantDBConfig struct {
	Pool *pgxpool.Pool
}

func NewTenantDB(cfg TenantDBConfig) *TenantDB {
	if cfg.Pool == nil {
		panic("TenantDB requires pool")
	}
	return &TenantDB{pool: cfg.Pool}
}

// WithTenant executes fn inside a transaction scoped to the tenant identity
// carried on ctx. When ctx carries no tenant, the context is applied as the
// empty string: row security then matches zero owned rows, which is the
// fail-closed contract, not an error.
func (db *TenantDB) WithTenant(ctx context.Context, fn func(tx pgx.Tx) error) error {
	id, _ := tenant.FromContext(ctx)
	return db.withContext(ctx, id, fn)
}

// WithTenantID is WithTenant for callers that resolve the tenant out of
// band (seed verification, cross-tenant assertions in tests).
func (db *TenantDB) WithTenantID(ctx context.Context, id tenant.ID, fn func(tx pgx.Tx) error) error {
	return db.withContext(ctx, id, fn)
}

func (db *TenantDB) withContext(ctx context.Context, id tenant.ID, fn func(tx pgx.Tx) error) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT set_tenant_context($1)`, string(id)); err != nil {
		return fmt.Errorf("set tenant context: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CurrentContext reads back the active tenant setting inside a fresh
// transaction after applying id. Used by migration smoke tests to verify
// the database function round-trips the value it was handed.
func (db *TenantDB) CurrentContext(ctx context.Context, id tenant.ID) (string, error) {
	var value *string
	err := db.withContext(ctx, id, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `SELECT current_setting('app.current_tenant', TRUE)`).Scan(&value)
	})
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}
