package model

// Role is the fixed set of identity roles.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleSchoolAdmin Role = "school_admin"
	RoleTeacher     Role = "teacher"
	RoleStudent     Role = "student"
)

// AllRoles lists every valid role.
var AllRoles = []Role{RoleSuperAdmin, RoleSchoolAdmin, RoleTeacher, RoleStudent}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleSchoolAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// RequiresSchool reports whether identities of this role belong to a school.
func (r Role) RequiresSchool() bool {
	return r != RoleSuperAdmin
}

// Record lifecycle statuses shared by schools and users.
const (
	StatusPendingVerification = "pending_verification"
	StatusActive              = "active"
	StatusSuspended           = "suspended"
)
