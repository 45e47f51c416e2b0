package gorm

import (
	"gorm.io/gorm"

	"github.com/permauth/permauth-in-go/pkg/model"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// PermissionsStore persists the permission catalog in Postgres.
type PermissionsStore struct {
	db *gorm.DB
}

var _ store.PermissionsStore = (*PermissionsStore)(nil)

func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

func (s *PermissionsStore) ListPermissions() ([]store.Permission, error) {
	var rows []model.Permission
	err := s.db.Order("module, action").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	perms := make([]store.Permission, 0, len(rows))
	for _, row := range rows {
		perms = append(perms, toStorePermission(row))
	}
	return perms, nil
}

func (s *PermissionsStore) ListPermissionNames() ([]string, error) {
	var names []string
	err := s.db.Model(&model.Permission{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// CreatePermissions inserts the batch without conflict handling. When
// two instances race the catalog sync, the loser's insert trips the
// unique name index and comes back as store.ErrDuplicateName.
func (s *PermissionsStore) CreatePermissions(perms []store.Permission) error {
	if len(perms) == 0 {
		return nil
	}
	rows := make([]model.Permission, 0, len(perms))
	for _, p := range perms {
		rows = append(rows, model.Permission{
			Name:        p.Name,
			Module:      p.Module,
			Action:      p.Action,
			Description: p.Description,
		})
	}
	err := s.db.Create(&rows).Error
	if isUniqueViolation(err) {
		return store.ErrDuplicateName
	}
	return err
}

func (s *PermissionsStore) FindPermissionsByNames(names []string) ([]store.Permission, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []model.Permission
	err := s.db.Where("name IN ?", names).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	perms := make([]store.Permission, 0, len(rows))
	for _, row := range rows {
		perms = append(perms, toStorePermission(row))
	}
	return perms, nil
}

func toStorePermission(row model.Permission) store.Permission {
	return store.Permission{
		ID:          row.ID,
		Name:        row.Name,
		Module:      row.Module,
		Action:      row.Action,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}
