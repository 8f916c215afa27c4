package models

import "strings"

// Role is the authorization role of a user as reported by the server.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
	RoleGuest      Role = "GUEST"
)

// ParseRole normalizes s to a known Role. Unknown values yield ("", false).
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// Valid reports whether r is one of the roles the server issues.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

// Satisfies reports whether a user holding r may access something that
// requires the role required. ADMIN satisfies every requirement and an
// empty requirement is satisfied by any role.
func (r Role) Satisfies(required Role) bool {
	if required == "" {
		return true
	}
	return r == required || r == RoleAdmin
}
