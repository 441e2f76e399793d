package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	sqlassets "github.com/aumos-platform/testbed/database"
)

// BootstrapSchema applies the baseline DDL in a single transaction, in this
// order:
//  1. schema/tenants.sql (tenant registry)
//  2. schema/test_users.sql (seeded users)
//  3. schema/tenant_isolation.sql (tenant-scoped table, set_tenant_context
//     function, row security policy)
//
// SQL is embedded at build time so binaries stay self-contained. The helper
// is idempotent (CREATE IF NOT EXISTS / CREATE OR REPLACE / DROP POLICY IF
// EXISTS) and intended for CLI bootstrap and tests. Policy definitions land
// in the catalog, so a fresh connection re-derives enforcement from
// metadata alone.
func BootstrapSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("bootstrap schema: pool is required")
	}

	var statements []string
	statements = append(statements, splitStatements(sqlassets.TenantsSQL)...)
	statements = append(statements, splitStatements(sqlassets.TestUsersSQL)...)
	statements = append(statements, splitStatements(sqlassets.TenantIsolationSQL)...)

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply ddl: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// splitStatements breaks an embedded SQL asset into executable statements.
// Dollar-quoted function bodies are kept intact, so a semicolon inside
// $$...$$ does not split the statement.
func splitStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
		inDollar   bool
	)

	for i := 0; i < len(script); i++ {
		if i+1 < len(script) && script[i] == '$' && script[i+1] == '$' {
			inDollar = !inDollar
			current.WriteString("$$")
			i++
			continue
		}

		if script[i] == ';' && !inDollar {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
			continue
		}

		current.WriteByte(script[i])
	}

	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}
