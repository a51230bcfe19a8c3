// internal/rbac/roles.go
package rbac

// Role is the authorization domain of a credential. A user holds exactly one
// role at a time, as encoded in the bearer token.
type Role string

const (
	// PlatformOwner owns the accounting platform itself.
	PlatformOwner Role = "PLATFORM_OWNER"

	// PlatformAdmin administers the platform on the owner's behalf.
	PlatformAdmin Role = "PLATFORM_ADMIN"

	// BusinessOwner owns a tenant business on the platform.
	BusinessOwner Role = "BUSINESS_OWNER"

	// BusinessAdmin administers a tenant business.
	BusinessAdmin Role = "BUSINESS_ADMIN"

	// Client is an end customer of a tenant business.
	Client Role = "CLIENT"
)

// Roles returns all roles in declaration order.
func Roles() []Role {
	return []Role{PlatformOwner, PlatformAdmin, BusinessOwner, BusinessAdmin, Client}
}

// Parse maps a raw claim value to a Role. Unknown values yield ok == false;
// they are never an error, the caller degrades to "no role".
func Parse(s string) (Role, bool) {
	switch Role(s) {
	case PlatformOwner, PlatformAdmin, BusinessOwner, BusinessAdmin, Client:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is one of the five known variants.
func (r Role) Valid() bool {
	_, ok := Parse(string(r))
	return ok
}

// DefaultRoute returns the landing path for a role under the given locale.
// Used by the surrounding application after login.
func DefaultRoute(r Role, locale string) string {
	switch r {
	case PlatformOwner, PlatformAdmin:
		return "/" + locale + "/admin"
	case Client:
		return "/" + locale + "/invoices"
	default:
		return "/" + locale + "/dashboard"
	}
}
