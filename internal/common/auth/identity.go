package auth

// Roles recognised by the reservation service.
const (
	RoleAdmin    = "Admin"
	RoleProvider = "Provider"
	RoleClient   = "Client"
)

// Identity is the authenticated caller. It is passed explicitly into every
// application operation; nothing reads it from ambient request state.
type Identity struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the caller holds the given role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (i Identity) IsAdmin() bool { return i.HasRole(RoleAdmin) }

// IsProvider is shorthand for HasRole(RoleProvider).
func (i Identity) IsProvider() bool { return i.HasRole(RoleProvider) }

// IsAnonymous reports whether no user id is attached.
func (i Identity) IsAnonymous() bool { return i.UserID == "" }
