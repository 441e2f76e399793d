package sqlassets

import _ "embed"

//go:embed schema/tenants.sql
var TenantsSQL string

//go:embed schema/test_users.sql
var TestUsersSQL string

//go:embed schema/tenant_isolation.sql
var TenantIsolationSQL string
