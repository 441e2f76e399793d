package tenant

import (
	"context"
	"strings"
)

// ID is the opaque tenant identifier claimed by a caller. In integration
// runs it is one of the fixed seed UUIDs. The policy layer never validates
// it against the tenant registry: an unknown value simply owns no rows.
type ID string

// None is the absent context. Queries issued under it match zero tenant
// rows: the isolation policy is fail-closed, not fail-open.
const None ID = ""

type ctxKey struct{}

// WithID returns a derived context carrying the caller's tenant identity.
// The value is request-scoped and travels with the unit of work; it is
// never stored in process-wide state.
func WithID(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the tenant identity and a boolean indicating
// presence. Absent or blank values both mean "no tenant".
func FromContext(ctx context.Context) (ID, bool) {
	v := ctx.Value(ctxKey{})
	if v == nil {
		return None, false
	}

	id, ok := v.(ID)
	if !ok || strings.TrimSpace(string(id)) == "" {
		return None, false
	}
	return id, true
}

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// IsNone reports whether the identifier denotes the absent context.
func (id ID) IsNone() bool { return strings.TrimSpace(string(id)) == "" }
