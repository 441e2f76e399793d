// Package seeding populates the canonical AumOS integration test data.
//
// All integration tests that need tenant or user context must use these
// fixtures rather than generating random UUIDs. Stable identifiers keep
// test failures reproducible, keep seeded database state aligned with test
// expectations, and make CI runs deterministic across machines.
package seeding

import (
	"github.com/aumos-platform/testbed/platform/go/tenant"
)

// Test tenant UUIDs, stable across all runs.
const (
	TenantAlphaID tenant.ID = "00000000-0000-0000-0000-000000000001"
	TenantBetaID  tenant.ID = "00000000-0000-0000-0000-000000000002"
	TenantGammaID tenant.ID = "00000000-0000-0000-0000-000000000003"
)

const (
	TenantAlphaName = "Integration Test Tenant Alpha"
	TenantBetaName  = "Integration Test Tenant Beta"
	TenantGammaName = "Integration Test Tenant Gamma"

	TenantAlphaSlug = "test-tenant-alpha"
	TenantBetaSlug  = "test-tenant-beta"
	TenantGammaSlug = "test-tenant-gamma"
)

// AllTenantIDs lists every seeded tenant, in seed order.
var AllTenantIDs = []tenant.ID{TenantAlphaID, TenantBetaID, TenantGammaID}

// SeedTenant is one row of the tenant registry seed set.
type SeedTenant struct {
	ID   tenant.ID
	Name string
	Slug string
}

// SeedUser is one row of the test_users seed set: one user per privilege
// level per tenant.
type SeedUser struct {
	ID        string
	TenantID  tenant.ID
	Username  string
	Email     string
	Privilege tenant.Privilege
}

// SeedTenants is the fixed tenant registry content.
var SeedTenants = []SeedTenant{
	{ID: TenantAlphaID, Name: TenantAlphaName, Slug: TenantAlphaSlug},
	{ID: TenantBetaID, Name: TenantBetaName, Slug: TenantBetaSlug},
	{ID: TenantGammaID, Name: TenantGammaName, Slug: TenantGammaSlug},
}

// SeedUsers is the fixed user set: 5 privilege levels x 3 tenants. The
// identifier encodes the tenant ordinal and privilege level, so expectations
// can be hard-coded.
var SeedUsers = []SeedUser{
	// Tenant Alpha
	{ID: "00000000-0001-0000-0000-000000000001", TenantID: TenantAlphaID, Username: "alpha-read", Email: "read@alpha.test", Privilege: tenant.PrivilegeReadOnly},
	{ID: "00000000-0001-0000-0000-000000000002", TenantID: TenantAlphaID, Username: "alpha-write", Email: "write@alpha.test", Privilege: tenant.PrivilegeReadWrite},
	{ID: "00000000-0001-0000-0000-000000000003", TenantID: TenantAlphaID, Username: "alpha-op", Email: "op@alpha.test", Privilege: tenant.PrivilegeOperator},
	{ID: "00000000-0001-0000-0000-000000000004", TenantID: TenantAlphaID, Username: "alpha-admin", Email: "admin@alpha.test", Privilege: tenant.PrivilegeAdmin},
	{ID: "00000000-0001-0000-0000-000000000005", TenantID: TenantAlphaID, Username: "alpha-super", Email: "super@alpha.test", Privilege: tenant.PrivilegeSuperAdmin},
	// Tenant Beta
	{ID: "00000000-0002-0000-0000-000000000001", TenantID: TenantBetaID, Username: "beta-read", Email: "read@beta.test", Privilege: tenant.PrivilegeReadOnly},
	{ID: "00000000-0002-0000-0000-000000000002", TenantID: TenantBetaID, Username: "beta-write", Email: "write@beta.test", Privilege: tenant.PrivilegeReadWrite},
	{ID: "00000000-0002-0000-0000-000000000003", TenantID: TenantBetaID, Username: "beta-op", Email: "op@beta.test", Privilege: tenant.PrivilegeOperator},
	{ID: "00000000-0002-0000-0000-000000000004", TenantID: TenantBetaID, Username: "beta-admin", Email: "admin@beta.test", Privilege: tenant.PrivilegeAdmin},
	{ID: "00000000-0002-0000-0000-000000000005", TenantID: TenantBetaID, Username: "beta-super", Email: "super@beta.test", Privilege: tenant.PrivilegeSuperAdmin},
	// Tenant Gamma
	{ID: "00000000-0003-0000-0000-000000000001", TenantID: TenantGammaID, Username: "gamma-read", Email: "read@gamma.test", Privilege: tenant.PrivilegeReadOnly},
	{ID: "00000000-0003-0000-0000-000000000002", TenantID: TenantGammaID, Username: "gamma-write", Email: "write@gamma.test", Privilege: tenant.PrivilegeReadWrite},
	{ID: "00000000-0003-0000-0000-000000000003", TenantID: TenantGammaID, Username: "gamma-op", Email: "op@gamma.test", Privilege: tenant.PrivilegeOperator},
	{ID: "00000000-0003-0000-0000-000000000004", TenantID: TenantGammaID, Username: "gamma-admin", Email: "admin@gamma.test", Privilege: tenant.PrivilegeAdmin},
	{ID: "00000000-0003-0000-0000-000000000005", TenantID: TenantGammaID, Username: "gamma-super", Email: "super@gamma.test", Privilege: tenant.PrivilegeSuperAdmin},
}

// SeedTopic is one Kafka topic created before integration runs.
type SeedTopic struct {
	Name              string
	Partitions        int
	ReplicationFactor int
}

// SeedTopics lists the standard AumOS topics.
var SeedTopics = []SeedTopic{
	{Name: "aumos.audit.events", Partitions: 3, ReplicationFactor: 1},
	{Name: "aumos.governance.events", Partitions: 3, ReplicationFactor: 1},
	{Name: "aumos.model.lifecycle", Partitions: 3, ReplicationFactor: 1},
	{Name: "aumos.data.pipeline", Partitions: 3, ReplicationFactor: 1},
	{Name: "aumos.alerts", Partitions: 1, ReplicationFactor: 1},
	{Name: "aumos.audit.events.dlq", Partitions: 1, ReplicationFactor: 1},
	{Name: "aumos.governance.events.dlq", Partitions: 1, ReplicationFactor: 1},
}

// BucketName returns the object-storage namespace for a tenant.
func BucketName(id tenant.ID) string {
	return "aumos-" + string(id)
}
