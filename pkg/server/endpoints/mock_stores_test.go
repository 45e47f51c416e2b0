package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// MockAuthzStore implements store.AuthzStore for testing using testify/mock
type MockAuthzStore struct {
	mock.Mock
}

func NewMockAuthzStore() *MockAuthzStore {
	return &MockAuthzStore{}
}

func (m *MockAuthzStore) HasPermission(userID int, permissionName string) bool {
	args := m.Called(userID, permissionName)
	return args.Bool(0)
}

// MockPermissionsStore implements store.PermissionsStore for testing using testify/mock
type MockPermissionsStore struct {
	mock.Mock
}

func NewMockPermissionsStore() *MockPermissionsStore {
	return &MockPermissionsStore{}
}

func (m *MockPermissionsStore) ListPermissions() ([]store.Permission, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Permission), args.Error(1)
}

func (m *MockPermissionsStore) ListPermissionNames() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPermissionsStore) CreatePermissions(perms []store.Permission) error {
	args := m.Called(perms)
	return args.Error(0)
}

func (m *MockPermissionsStore) FindPermissionsByNames(names []string) ([]store.Permission, error) {
	args := m.Called(names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Permission), args.Error(1)
}

// MockRolesStore implements store.RolesStore for testing using testify/mock
type MockRolesStore struct {
	mock.Mock
}

func NewMockRolesStore() *MockRolesStore {
	return &MockRolesStore{}
}

func (m *MockRolesStore) ListRoles() ([]store.Role, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Role), args.Error(1)
}

func (m *MockRolesStore) CreateRole(name string) (*store.Role, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Role), args.Error(1)
}

func (m *MockRolesStore) DeleteRole(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRolesStore) FindRoleByName(name string) (*store.Role, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Role), args.Error(1)
}

func (m *MockRolesStore) RoleExists(id int) bool {
	args := m.Called(id)
	return args.Bool(0)
}

func (m *MockRolesStore) GrantPermissions(roleID int, permissionIDs []int) (int, error) {
	args := m.Called(roleID, permissionIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockRolesStore) RevokePermission(roleID int, permissionName string) error {
	args := m.Called(roleID, permissionName)
	return args.Error(0)
}

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) CreateUser(username, email, passwordHash string) (*store.User, error) {
	args := m.Called(username, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUsersStore) FetchCredentials(email string) (*store.Credentials, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Credentials), args.Error(1)
}

func (m *MockUsersStore) FetchProfile(userID int) (*store.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Profile), args.Error(1)
}

func (m *MockUsersStore) ListUsers() ([]store.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.User), args.Error(1)
}

func (m *MockUsersStore) GrantRole(userID, roleID int) error {
	args := m.Called(userID, roleID)
	return args.Error(0)
}

func (m *MockUsersStore) RevokeRole(userID int, roleName string) error {
	args := m.Called(userID, roleName)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) Ping() error {
	args := m.Called()
	return args.Error(0)
}
