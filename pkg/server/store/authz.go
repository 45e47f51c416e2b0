package store

// AuthzStore abstracts the RBAC membership query the gate runs per
// request. Implementations must support concurrent reads.
type AuthzStore interface {
	// HasPermission reports whether any role granted to the user also
	// grants the named permission. Evaluated as a single existential
	// join so no partial write is ever visible.
	HasPermission(userID int, permissionName string) bool
}
