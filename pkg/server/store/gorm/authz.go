package gorm

import (
	"log"

	"gorm.io/gorm"

	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// AuthzStore answers the per-request membership query against Postgres.
type AuthzStore struct {
	db *gorm.DB
}

var _ store.AuthzStore = (*AuthzStore)(nil)

func NewAuthzStore(db *gorm.DB) *AuthzStore {
	return &AuthzStore{db: db}
}

// HasPermission runs a single existential join over user_roles,
// role_permissions and permissions. A query error denies access and is
// logged; the gate never fails open on storage trouble.
func (s *AuthzStore) HasPermission(userID int, permissionName string) bool {
	var allowed bool
	err := s.db.Raw(
		`SELECT EXISTS (
		   SELECT 1
		     FROM user_roles ur
		     JOIN role_permissions rp ON rp.role_id = ur.role_id
		     JOIN permissions p ON p.id = rp.permission_id
		    WHERE ur.user_id = ? AND p.name = ?
		 )`,
		userID, permissionName,
	).Scan(&allowed).Error
	if err != nil {
		log.Printf("authz: permission check failed for user %d: %v", userID, err)
		return false
	}
	return allowed
}
