package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TableSecurity reports the row security flags recorded for a table in
// pg_class. Both flags must be true for a forced, bypass-proof policy.
type TableSecurity struct {
	RowSecurityEnabled bool
	RowSecurityForced  bool
}

// Policy describes one row in pg_policies for a guarded table.
type Policy struct {
	Name         string
	Command      string
	HasUsing     bool
	HasWithCheck bool
}

// ErrTableNotFound indicates the inspected table is absent from pg_class.
var ErrTableNotFound = errors.New("table not found")

// InspectTableSecurity reads the relrowsecurity/relforcerowsecurity flags
// for the named table. The flags live in the catalog, so the result is
// independent of any previously running process or session cache.
func InspectTableSecurity(ctx context.Context, pool *pgxpool.Pool, table string) (TableSecurity, error) {
	var sec TableSecurity
	err := pool.QueryRow(ctx, `
        SELECT relrowsecurity, relforcerowsecurity
        FROM pg_class WHERE relname = $1
    `, table).Scan(&sec.RowSecurityEnabled, &sec.RowSecurityForced)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TableSecurity{}, ErrTableNotFound
		}
		return TableSecurity{}, fmt.Errorf("inspect table security: %w", err)
	}

	return sec, nil
}

// ListPolicies returns the policies attached to the named table.
func ListPolicies(ctx context.Context, pool *pgxpool.Pool, table string) ([]Policy, error) {
	rows, err := pool.Query(ctx, `
        SELECT policyname, cmd,
               qual IS NOT NULL AS has_using,
               with_check IS NOT NULL AS has_with_check
        FROM pg_policies WHERE tablename = $1
    `, table)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var policies []Policy
	for rows.Next() {
		var p Policy
		if err := rows.Scan(&p.Name, &p.Command, &p.HasUsing, &p.HasWithCheck); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}

	return policies, nil
}

// TenantContextFunctionInstalled reports whether set_tenant_context is
// present in information_schema.routines.
func TenantContextFunctionInstalled(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var installed bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.routines
            WHERE routine_name = 'set_tenant_context'
        )
    `).Scan(&installed)
	if err != nil {
		return false, fmt.Errorf("check tenant context function: %w", err)
	}

	return installed, nil
}

// TableExists reports whether the named table is visible in
// information_schema.tables under the public schema.
func TableExists(ctx context.Context, pool *pgxpool.Pool, table string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = 'public' AND table_name = $1
        )
    `, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}

	return exists, nil
}
