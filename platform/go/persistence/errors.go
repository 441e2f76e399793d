package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrTenantContextViolation indicates a write whose declared tenant_id
	// does not match the active session context. Raised by the row security
	// WITH CHECK clause; never silently corrected.
	ErrTenantContextViolation = errors.New("tenant context violation")

	// ErrStatementTimeout indicates the server aborted a statement that
	// exceeded the configured statement_timeout.
	ErrStatementTimeout = errors.New("statement timeout exceeded")

	// ErrRecordNotFound indicates a missing (or invisible) tenant-scoped row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrConflict indicates a uniqueness violation (duplicated id or email).
	ErrConflict = errors.New("record conflict")
)

// SQLSTATE codes the isolation core distinguishes.
const (
	codeUniqueViolation       = "23505"
	codeCheckViolation        = "23514"
	codeInsufficientPrivilege = "42501" // RLS WITH CHECK rejection
	codeQueryCanceled         = "57014" // statement_timeout abort
)

// mapPgError translates driver-level SQLSTATE failures into the package's
// typed errors so callers can branch without importing pgconn. Unrecognized
// errors pass through unchanged.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeInsufficientPrivilege:
		return ErrTenantContextViolation
	case codeQueryCanceled:
		return ErrStatementTimeout
	case codeUniqueViolation:
		return ErrConflict
	case codeCheckViolation:
		return ErrConflict
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
