package entities

import "strings"

type Role string

const (
	RoleStudent    Role = "student"
	RoleTeacher    Role = "teacher"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole accepts "admin" as an alias of the department admin role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return RoleStudent, true
	case "teacher", "admin":
		return RoleTeacher, true
	case "superadmin":
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

// Actor is the identity supplied by the caller. It is trusted as given.
type Actor struct {
	UserID       uint
	Role         Role
	DepartmentID uint
}

func (a Actor) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }

// IsEventAdmin reports whether the actor manages events, for a department
// or globally.
func (a Actor) IsEventAdmin() bool {
	return a.Role == RoleTeacher || a.Role == RoleSuperAdmin
}
