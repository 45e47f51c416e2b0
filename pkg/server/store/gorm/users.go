package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/permauth/permauth-in-go/pkg/model"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// UsersStore persists users and user-role grants in Postgres.
type UsersStore struct {
	db *gorm.DB
}

var _ store.UsersStore = (*UsersStore)(nil)

func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

func (s *UsersStore) CreateUser(username, email, passwordHash string) (*store.User, error) {
	row := model.User{Username: username, Email: email, PasswordHash: passwordHash}
	err := s.db.Create(&row).Error
	if isUniqueViolation(err) {
		return nil, store.ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return &store.User{ID: row.ID, Username: row.Username, Email: row.Email}, nil
}

func (s *UsersStore) FetchCredentials(email string) (*store.Credentials, error) {
	var row model.User
	err := s.db.Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store.Credentials{
		UserID:       row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
	}, nil
}

func (s *UsersStore) FetchProfile(userID int) (*store.Profile, error) {
	var row model.User
	err := s.db.First(&row, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	roles := []string{}
	err = s.db.Raw(
		`SELECT r.name
		   FROM user_roles ur
		   JOIN roles r ON r.id = ur.role_id
		  WHERE ur.user_id = ?
		  ORDER BY r.name`,
		userID,
	).Scan(&roles).Error
	if err != nil {
		return nil, err
	}

	permissions := []string{}
	err = s.db.Raw(
		`SELECT DISTINCT p.name
		   FROM user_roles ur
		   JOIN role_permissions rp ON rp.role_id = ur.role_id
		   JOIN permissions p ON p.id = rp.permission_id
		  WHERE ur.user_id = ?
		  ORDER BY p.name`,
		userID,
	).Scan(&permissions).Error
	if err != nil {
		return nil, err
	}

	return &store.Profile{
		ID:          row.ID,
		Username:    row.Username,
		Email:       row.Email,
		Roles:       roles,
		Permissions: permissions,
	}, nil
}

func (s *UsersStore) ListUsers() ([]store.User, error) {
	var rows []model.User
	err := s.db.Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	type grant struct {
		UserID int
		Name   string
	}
	var grants []grant
	err = s.db.Raw(
		`SELECT ur.user_id, r.name
		   FROM user_roles ur
		   JOIN roles r ON r.id = ur.role_id
		  ORDER BY r.name`,
	).Scan(&grants).Error
	if err != nil {
		return nil, err
	}
	byUser := make(map[int][]string)
	for _, g := range grants {
		byUser[g.UserID] = append(byUser[g.UserID], g.Name)
	}

	users := make([]store.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, store.User{
			ID:       row.ID,
			Username: row.Username,
			Email:    row.Email,
			Roles:    byUser[row.ID],
		})
	}
	return users, nil
}

// GrantRole is idempotent; granting an already-held role changes
// nothing.
func (s *UsersStore) GrantRole(userID, roleID int) error {
	return s.db.Exec(
		`INSERT INTO user_roles (user_id, role_id)
		 SELECT ?, ?
		  WHERE NOT EXISTS (
		    SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?
		  )`,
		userID, roleID, userID, roleID,
	).Error
}

func (s *UsersStore) RevokeRole(userID int, roleName string) error {
	res := s.db.Exec(
		`DELETE FROM user_roles ur
		  USING roles r
		  WHERE r.id = ur.role_id
		    AND ur.user_id = ?
		    AND r.name = ?`,
		userID, roleName,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
