package gorm

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/permauth/permauth-in-go/pkg/server/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return db, mock
}

func TestAuthzStoreHasPermission(t *testing.T) {
	db, mock := newMockDB(t)
	authz := NewAuthzStore(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(42, "Products.Delete").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if !authz.HasPermission(42, "Products.Delete") {
		t.Error("expected permission to be granted")
	}

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(42, "Orders.Ship").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	if authz.HasPermission(42, "Orders.Ship") {
		t.Error("expected permission to be denied")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAuthzStoreDeniesOnQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	authz := NewAuthzStore(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(7, "Products.GetAll").
		WillReturnError(errors.New("connection reset"))

	if authz.HasPermission(7, "Products.GetAll") {
		t.Error("storage errors must deny, not allow")
	}
}

func TestPermissionsStoreCreateMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	perms := NewPermissionsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "permissions"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := perms.CreatePermissions([]store.Permission{
		{Name: "Products.Create", Module: "Products", Action: "Create"},
	})
	if !errors.Is(err, store.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestPermissionsStoreCreateEmptyBatch(t *testing.T) {
	db, _ := newMockDB(t)
	perms := NewPermissionsStore(db)

	if err := perms.CreatePermissions(nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}

func TestRolesStoreRevokePermissionNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	roles := NewRolesStore(db)

	mock.ExpectExec(`DELETE FROM role_permissions`).
		WithArgs(3, "Products.Delete").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := roles.RevokePermission(3, "Products.Delete")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRolesStoreGrantPermissionsSkipsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	roles := NewRolesStore(db)

	mock.ExpectExec(`INSERT INTO role_permissions`).
		WithArgs(3, 10, 3, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO role_permissions`).
		WithArgs(3, 11, 3, 11).
		WillReturnResult(sqlmock.NewResult(0, 0))

	granted, err := roles.GrantPermissions(3, []int{10, 11})
	if err != nil {
		t.Fatalf("GrantPermissions() error = %v", err)
	}
	if granted != 1 {
		t.Errorf("expected 1 newly granted row, got %d", granted)
	}
}

func TestUsersStoreGrantRoleIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUsersStore(db)

	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(5, 2, 5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := users.GrantRole(5, 2); err != nil {
		t.Errorf("duplicate grant should be a no-op, got %v", err)
	}
}

func TestUsersStoreRevokeRoleNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUsersStore(db)

	mock.ExpectExec(`DELETE FROM user_roles`).
		WithArgs(5, "admin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := users.RevokeRole(5, "admin")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("pgconn 23505 should be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violations are not unique violations")
	}
	if isUniqueViolation(errors.New("plain error")) {
		t.Error("plain errors are not unique violations")
	}
}
