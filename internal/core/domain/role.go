package domain

// UserRole defines the role an authenticated user acts under.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleFinance    UserRole = "FINANCE"
	RoleDispatcher UserRole = "DISPATCHER"
	RoleReadOnly   UserRole = "READONLY"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFinance, RoleDispatcher, RoleReadOnly:
		return true
	}
	return false
}

// HasAnyRole reports whether r is one of allowed.
func (r UserRole) HasAnyRole(allowed ...UserRole) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Actor identifies who is performing an operation.
type Actor struct {
	UserID string
	Role   UserRole
}
