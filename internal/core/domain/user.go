package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// User statuses as reported by the backend.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Permission grants a single action on a resource (e.g. "manga"/"update").
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

// Role bundles a named permission set.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	Description string       `json:"description,omitempty"`
}

// User models an authenticated actor in the system.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Role      Role       `json:"role"`
	Status    string     `json:"status,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// HasPermission reports whether the user's role grants action on resource.
// A nil user has no permissions.
func HasPermission(u *User, resource, action string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Role.Permissions {
		if p.Resource == resource && p.Action == action {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role.
func IsAdmin(u *User) bool {
	return u != nil && u.Role.Name == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func IsModerator(u *User) bool {
	return u != nil && u.Role.Name == RoleModerator
}

// CanManageUsers reports whether the user may administer accounts.
func CanManageUsers(u *User) bool {
	return HasPermission(u, "user", "manage") || IsAdmin(u)
}

// CanManageManga reports whether the user may create or manage catalog entries.
func CanManageManga(u *User) bool {
	return HasPermission(u, "manga", "manage") || HasPermission(u, "manga", "create")
}
