package domain

// Role is the closed set of privilege levels. Anything outside this set is
// rejected at the edges (token verification, user creation).
type Role string

const (
	RoleUser        Role = "user"
	RoleTenantAdmin Role = "tenant_admin"
	RoleSuperAdmin  Role = "super_admin"
)

// ParseRole maps a raw string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleTenantAdmin, RoleSuperAdmin:
		return Role(s), true
	}
	return "", false
}

// IsAdmin reports whether the role may use tenant-administration endpoints.
func (r Role) IsAdmin() bool {
	return r == RoleTenantAdmin || r == RoleSuperAdmin
}

// Identity is the request-scoped projection of a verified credential. It is
// built once by the auth middleware and never mutated afterwards.
type Identity struct {
	UserID   string
	TenantID string
	Email    string
	Role     Role
}
