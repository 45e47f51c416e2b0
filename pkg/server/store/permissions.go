package store

import "time"

// Permission is a catalog record.
type Permission struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Module      string    `json:"module"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PermissionsStore abstracts the persisted permission catalog.
type PermissionsStore interface {
	// ListPermissions returns the catalog ordered by module then action.
	ListPermissions() ([]Permission, error)

	// ListPermissionNames returns every catalog name.
	ListPermissionNames() ([]string, error)

	// CreatePermissions inserts catalog records in a single batch write.
	// A unique-name collision returns ErrDuplicateName.
	CreatePermissions(perms []Permission) error

	// FindPermissionsByNames returns the records matching the given
	// names; absent names are simply omitted.
	FindPermissionsByNames(names []string) ([]Permission, error)
}
