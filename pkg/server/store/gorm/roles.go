package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/permauth/permauth-in-go/pkg/model"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// RolesStore persists roles and role-permission grants in Postgres.
type RolesStore struct {
	db *gorm.DB
}

var _ store.RolesStore = (*RolesStore)(nil)

func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

func (s *RolesStore) ListRoles() ([]store.Role, error) {
	var rows []model.Role
	err := s.db.Order("name").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	type grant struct {
		RoleID int
		Name   string
	}
	var grants []grant
	err = s.db.Raw(
		`SELECT rp.role_id, p.name
		   FROM role_permissions rp
		   JOIN permissions p ON p.id = rp.permission_id
		  ORDER BY p.name`,
	).Scan(&grants).Error
	if err != nil {
		return nil, err
	}
	byRole := make(map[int][]string)
	for _, g := range grants {
		byRole[g.RoleID] = append(byRole[g.RoleID], g.Name)
	}

	roles := make([]store.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, store.Role{
			ID:          row.ID,
			Name:        row.Name,
			Permissions: byRole[row.ID],
		})
	}
	return roles, nil
}

func (s *RolesStore) CreateRole(name string) (*store.Role, error) {
	row := model.Role{Name: name}
	err := s.db.Create(&row).Error
	if isUniqueViolation(err) {
		return nil, store.ErrDuplicateName
	}
	if err != nil {
		return nil, err
	}
	return &store.Role{ID: row.ID, Name: row.Name}, nil
}

func (s *RolesStore) DeleteRole(id int) error {
	res := s.db.Delete(&model.Role{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *RolesStore) FindRoleByName(name string) (*store.Role, error) {
	var row model.Role
	err := s.db.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store.Role{ID: row.ID, Name: row.Name}, nil
}

func (s *RolesStore) RoleExists(id int) bool {
	var count int64
	if err := s.db.Model(&model.Role{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// GrantPermissions inserts only the grants not already present, so a
// repeated grant call is a no-op for the rows it already covers.
func (s *RolesStore) GrantPermissions(roleID int, permissionIDs []int) (int, error) {
	granted := 0
	for _, permissionID := range permissionIDs {
		res := s.db.Exec(
			`INSERT INTO role_permissions (role_id, permission_id)
			 SELECT ?, ?
			  WHERE NOT EXISTS (
			    SELECT 1 FROM role_permissions
			     WHERE role_id = ? AND permission_id = ?
			  )`,
			roleID, permissionID, roleID, permissionID,
		)
		if res.Error != nil {
			return granted, res.Error
		}
		granted += int(res.RowsAffected)
	}
	return granted, nil
}

func (s *RolesStore) RevokePermission(roleID int, permissionName string) error {
	res := s.db.Exec(
		`DELETE FROM role_permissions rp
		  USING permissions p
		  WHERE p.id = rp.permission_id
		    AND rp.role_id = ?
		    AND p.name = ?`,
		roleID, permissionName,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
