package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProvisionAppRole creates the application login role used for all runtime
// database access and grants it the table privileges the isolation core
// needs. The role is created NOSUPERUSER NOBYPASSRLS: row security must be
// bypass-proof for the application's identity, so enforcement stays with
// the engine rather than trust in application code.
//
// Idempotent; requires an admin-privileged pool.
func ProvisionAppRole(ctx context.Context, pool *pgxpool.Pool, role, password string) error {
	if pool == nil {
		return fmt.Errorf("provision app role: pool is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return fmt.Errorf("provision app role: role is required")
	}

	roleIdent := pgx.Identifier{role}.Sanitize()
	roleLit := "'" + strings.ReplaceAll(role, "'", "''") + "'"
	passwordLit := "'" + strings.ReplaceAll(password, "'", "''") + "'"

	createRole := fmt.Sprintf(`
DO $create_role$
BEGIN
   IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = %s) THEN
      CREATE ROLE %s LOGIN PASSWORD %s NOSUPERUSER NOBYPASSRLS;
   END IF;
END$create_role$;`, roleLit, roleIdent, passwordLit)

	if _, err := pool.Exec(ctx, createRole); err != nil {
		return fmt.Errorf("create app role: %w", err)
	}

	grants := []string{
		fmt.Sprintf(`GRANT SELECT, INSERT, UPDATE, DELETE ON %s TO %s`, RecordsTable, roleIdent),
		fmt.Sprintf(`GRANT SELECT ON tenants, test_users TO %s`, roleIdent),
		fmt.Sprintf(`GRANT EXECUTE ON FUNCTION set_tenant_context(TEXT) TO %s`, roleIdent),
	}
	for _, grant := range grants {
		if _, err := pool.Exec(ctx, grant); err != nil {
			return fmt.Errorf("grant app role privileges: %w", err)
		}
	}

	return nil
}
