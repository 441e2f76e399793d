package tenant

import "fmt"

// Privilege is the AumOS 5-level privilege ladder attached to seeded users.
type Privilege int

const (
	PrivilegeReadOnly   Privilege = 1
	PrivilegeReadWrite  Privilege = 2
	PrivilegeOperator   Privilege = 3
	PrivilegeAdmin      Privilege = 4
	PrivilegeSuperAdmin Privilege = 5
)

// Valid reports whether the level is within the closed range [1,5] enforced
// by the test_users check constraint.
func (p Privilege) Valid() bool {
	return p >= PrivilegeReadOnly && p <= PrivilegeSuperAdmin
}

func (p Privilege) String() string {
	switch p {
	case PrivilegeReadOnly:
		return "read-only"
	case PrivilegeReadWrite:
		return "read-write"
	case PrivilegeOperator:
		return "operator"
	case PrivilegeAdmin:
		return "admin"
	case PrivilegeSuperAdmin:
		return "super-admin"
	default:
		return fmt.Sprintf("privilege(%d)", int(p))
	}
}
