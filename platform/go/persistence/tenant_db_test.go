package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/aumos-platform/testbed/platform/go/tenant"
)

// fakeTx satisfies pgx.Tx and records Exec statements invoked.
type fakeTx struct {
	stmts []string
	args  [][]any
}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTx) Commit(ctx context.Context) error   { return nil }
func (f *fakeTx) Rollback(ctx context.Context) error { return nil }
func (f *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (f *fakeTx) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }
func (f *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return &pgconn.StatementDescription{}, errors.New("not implemented")
}
func (f *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { return nil }
func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.stmts = append(f.stmts, sql)
	f.args = append(f.args, args)
	return pgconn.CommandTag{}, nil
}
func (f *fakeTx) Conn() *pgx.Conn { return nil }

// fakePool returns a preconstructed transaction.
type fakePool struct{ tx *fakeTx }

func (p *fakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return p.tx, nil
}

func TestTenantDBWithTenantAppliesContextFromCtx(t *testing.T) {
	ftx := &fakeTx{}
	db := &TenantDB{pool: &fakePool{tx: ftx}}

	ctx := tenant.WithID(context.Background(), tenant.ID("00000000-0000-0000-0000-000000000001"))
	err := db.WithTenant(ctx, func(tx pgx.Tx) error { return nil })
	require.NoError(t, err)
	require.Len(t, ftx.stmts, 1)
	require.Contains(t, ftx.stmts[0], "set_tenant_context")
	require.Equal(t, []any{"00000000-0000-0000-0000-000000000001"}, ftx.args[0])
}

func TestTenantDBWithTenantNoContextAppliesEmptyString(t *testing.T) {
	ftx := &fakeTx{}
	db := &TenantDB{pool: &fakePool{tx: ftx}}

	err := db.WithTenant(context.Background(), func(tx pgx.Tx) error { return nil })
	require.NoError(t, err)
	require.Len(t, ftx.stmts, 1)
	require.Equal(t, []any{""}, ftx.args[0])
}

func TestTenantDBWithTenantIDOverridesCtx(t *testing.T) {
	ftx := &fakeTx{}
	db := &TenantDB{pool: &fakePool{tx: ftx}}

	ctx := tenant.WithID(context.Background(), tenant.ID("ctx-tenant"))
	err := db.WithTenantID(ctx, tenant.ID("explicit-tenant"), func(tx pgx.Tx) error { return nil })
	require.NoError(t, err)
	require.Equal(t, []any{"explicit-tenant"}, ftx.args[0])
}

func TestTenantDBWithTenantPropagatesFnError(t *testing.T) {
	db := &TenantDB{pool: &fakePool{tx: &fakeTx{}}}

	wantErr := errors.New("boom")
	err := db.WithTenant(context.Background(), func(tx pgx.Tx) error { return wantErr })
	require.ErrorIs(t, err, wantErr)
}
