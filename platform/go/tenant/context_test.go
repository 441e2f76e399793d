package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithIDRoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), ID("00000000-0000-0000-0000-000000000001"))

	id, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, ID("00000000-0000-0000-0000-000000000001"), id)
}

func TestFromContextAbsent(t *testing.T) {
	id, ok := FromContext(context.Background())
	require.False(t, ok)
	require.Equal(t, None, id)
	require.True(t, id.IsNone())
}

func TestFromContextBlankTreatedAsAbsent(t *testing.T) {
	ctx := WithID(context.Background(), ID("   "))

	id, ok := FromContext(ctx)
	require.False(t, ok)
	require.Equal(t, None, id)
}

func TestPrivilegeLadder(t *testing.T) {
	require.True(t, PrivilegeReadOnly.Valid())
	require.True(t, PrivilegeSuperAdmin.Valid())
	require.False(t, Privilege(0).Valid())
	require.False(t, Privilege(6).Valid())

	require.Equal(t, "read-only", PrivilegeReadOnly.String())
	require.Equal(t, "operator", PrivilegeOperator.String())
	require.Equal(t, "super-admin", PrivilegeSuperAdmin.String())
}
