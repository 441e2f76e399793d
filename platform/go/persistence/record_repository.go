package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aumos-platform/testbed/platform/go/tenant"
)

// RecordsTable is the representative tenant-scoped table guarded by the
// tenant_isolation row security policy.
const RecordsTable = "test_tenant_table"

// Record is a tenant-owned row. The tenant_id value determines its entire
// visibility and mutability surface; a row is never silently migrated to
// another tenant.
type Record struct {
	ID        string    `db:"id"`
	TenantID  tenant.ID `db:"tenant_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// RecordStore exposes persistence helpers for tenant-scoped records. Every
// operation runs inside a TenantDB transaction, so the filtering is done by
// the database engine under the caller's claimed context, not by WHERE
// clauses the caller could omit.
type RecordStore struct {
	db *TenantDB
}

func NewRecordStore(db *TenantDB) (*RecordStore, error) {
	if db == nil {
		return nil, errors.New("tenant db is required")
	}
	return &RecordStore{db: db}, nil
}

// CreateRecordParams captures the fields required to insert a record. The
// declared TenantID must match the context on ctx; the policy WITH CHECK
// clause rejects spoofed ownership with ErrTenantContextViolation.
type CreateRecordParams struct {
	ID       string
	TenantID tenant.ID
	Name     string
}

// Create inserts a record under the caller's tenant context.
func (s *RecordStore) Create(ctx context.Context, params CreateRecordParams) (Record, error) {
	if strings.TrimSpace(params.ID) == "" {
		params.ID = uuid.NewString()
	}
	if strings.TrimSpace(params.Name) == "" {
		return Record{}, errors.New("record name is required")
	}

	var rec Record
	err := s.db.WithTenant(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, fmt.Sprintf(`
            INSERT INTO %s (id, tenant_id, name)
            VALUES ($1, $2, $3)
            RETURNING id, tenant_id, name, created_at
        `, RecordsTable), params.ID, string(params.TenantID), strings.TrimSpace(params.Name))

		var err error
		rec, err = scanRecord(row)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return Record{}, ErrConflict
		}
		return Record{}, mapPgError(err)
	}

	return rec, nil
}

// Get fetches a record by id. Rows owned by other tenants are invisible to
// the policy filter, so a cross-tenant lookup reports ErrRecordNotFound
// rather than leaking existence.
func (s *RecordStore) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.db.WithTenant(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, fmt.Sprintf(`
            SELECT id, tenant_id, name, created_at
            FROM %s WHERE id = $1
        `, RecordsTable), id)

		var err error
		rec, err = scanRecord(row)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, mapPgError(err)
	}

	return rec, nil
}

// ListByPrefix returns the caller-visible records whose name starts with
// prefix, newest first.
func (s *RecordStore) ListByPrefix(ctx context.Context, prefix string) ([]Record, error) {
	var records []Record
	err := s.db.WithTenant(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, fmt.Sprintf(`
            SELECT id, tenant_id, name, created_at
            FROM %s
            WHERE name LIKE $1
            ORDER BY created_at DESC
        `, RecordsTable), prefix+"%")
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	return records, nil
}

// Count returns the number of rows visible under the caller's context.
// With no context set this is always zero.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.WithTenant(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, RecordsTable)).Scan(&count)
	})
	if err != nil {
		return 0, mapPgError(err)
	}

	return count, nil
}

// UpdateName renames a record. Target-row selection is policy-filtered, so
// foreign rows report ErrRecordNotFound; the WITH CHECK clause keeps the
// resulting row inside the caller's tenant.
func (s *RecordStore) UpdateName(ctx context.Context, id, name string) (Record, error) {
	if strings.TrimSpace(name) == "" {
		return Record{}, errors.New("record name is required")
	}

	var rec Record
	err := s.db.WithTenant(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, fmt.Sprintf(`
            UPDATE %s SET name = $1
            WHERE id = $2
            RETURNING id, tenant_id, name, created_at
        `, RecordsTable), strings.TrimSpace(name), id)

		var err error
		rec, err = scanRecord(row)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, mapPgError(err)
	}

	return rec, nil
}

// Delete removes a record by id and returns the number of rows affected.
// Deleting a foreign tenant's row affects zero rows: the row is invisible
// to the delete predicate, which is an empty match, not an error.
func (s *RecordStore) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64
	err := s.db.WithTenant(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, RecordsTable), id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, mapPgError(err)
	}

	return affected, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var tenantID string

	if err := row.Scan(&rec.ID, &tenantID, &rec.Name, &rec.CreatedAt); err != nil {
		return Record{}, err
	}

	rec.TenantID = tenant.ID(tenantID)
	return rec, nil
}
