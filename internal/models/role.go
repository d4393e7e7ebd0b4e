package models

// Role is a closed tag for staff roles. Role display names from the identity
// service are resolved to a tag once, at the authorization boundary; all
// internal dispatch switches on the tag.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleWaiter       Role = "waiter"
	RoleBartender    Role = "bartender"
	RoleKitchenStaff Role = "kitchen_staff"
)

var roleNames = map[string]Role{
	"Admin":              RoleAdmin,
	"Restaurant Manager": RoleManager,
	"Waiter":             RoleWaiter,
	"Bartender":          RoleBartender,
	"Kitchen Staff":      RoleKitchenStaff,
}

// RoleFromName resolves a role display name to its tag.
func RoleFromName(name string) (Role, bool) {
	role, ok := roleNames[name]
	return role, ok
}

// ParseRole validates a raw role tag value.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleManager, RoleWaiter, RoleBartender, RoleKitchenStaff:
		return Role(raw), true
	}
	return "", false
}

// DisplayName returns the human-readable role name.
func (r Role) DisplayName() string {
	for name, role := range roleNames {
		if role == r {
			return name
		}
	}
	return string(r)
}

// CanManageOrders reports whether the role may transition a parent order
// directly (cascading to both station queues).
func (r Role) CanManageOrders() bool {
	return r == RoleWaiter || r == RoleManager || r == RoleAdmin
}

// Station returns the preparation station a station-scoped role works, or
// false for roles not tied to a single station.
func (r Role) Station() (Destination, bool) {
	switch r {
	case RoleKitchenStaff:
		return DestinationKitchen, true
	case RoleBartender:
		return DestinationBar, true
	}
	return "", false
}
