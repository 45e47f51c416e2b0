package store

// Role is a role with the names of the permissions it grants.
type Role struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

// RolesStore abstracts role administration.
type RolesStore interface {
	// ListRoles returns all roles with their permission names.
	ListRoles() ([]Role, error)

	// CreateRole creates a role. A duplicate name returns
	// ErrDuplicateName.
	CreateRole(name string) (*Role, error)

	// DeleteRole removes a role; its role-permission and user-role rows
	// cascade away. Returns ErrNotFound for an unknown id.
	DeleteRole(id int) error

	// FindRoleByName returns the role with the given name, or
	// ErrNotFound.
	FindRoleByName(name string) (*Role, error)

	// RoleExists reports whether a role id exists.
	RoleExists(id int) bool

	// GrantPermissions grants permissions to a role. Already-granted
	// permissions are skipped; the count of newly granted rows is
	// returned.
	GrantPermissions(roleID int, permissionIDs []int) (int, error)

	// RevokePermission removes a role-permission grant by permission
	// name. Returns ErrNotFound when no such grant exists.
	RevokePermission(roleID int, permissionName string) error
}
