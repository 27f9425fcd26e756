package access

// Role is the closed set of backend-assigned admin roles
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleViewer     Role = "viewer"
)

// Permission is a capability tag derived from a role
type Permission string

const (
	PermView    Permission = "view"
	PermEdit    Permission = "edit"
	PermDelete  Permission = "delete"
	PermPublish Permission = "publish"
	PermAdmin   Permission = "admin"
)

// rolePermissions is the authoritative role to permission mapping
var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {PermView, PermEdit, PermDelete, PermPublish, PermAdmin},
	RoleAdmin:      {PermView, PermEdit, PermPublish},
	RoleModerator:  {PermView, PermEdit},
	RoleViewer:     {PermView},
}

// adminEligible holds the roles allowed into the admin area.
// viewer carries the view tag but is excluded here.
var adminEligible = map[Role]bool{
	RoleSuperAdmin: true,
	RoleAdmin:      true,
	RoleModerator:  true,
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns the permission set for a role; empty for unknown roles
func Permissions(r Role) []Permission {
	perms, ok := rolePermissions[r]
	if !ok {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the role carries the permission tag
func HasPermission(r Role, p Permission) bool {
	for _, perm := range rolePermissions[r] {
		if perm == p {
			return true
		}
	}
	return false
}

// IsAdminEligible reports whether the role may enter the admin area
func IsAdminEligible(r Role) bool {
	return adminEligible[r]
}
