package model

// UserRole is the user's role
type UserRole string

const (
	// RoleJobseeker can browse jobs, apply, and manage a jobseeker profile
	RoleJobseeker UserRole = "jobseeker"
	// RoleEmployer can post jobs, review applicants, and manage an employer profile
	RoleEmployer UserRole = "employer"
)

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleJobseeker, RoleEmployer:
		return true
	default:
		return false
	}
}

// AllRoles returns all predefined roles
func AllRoles() []UserRole {
	return []UserRole{RoleJobseeker, RoleEmployer}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}
