package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/permauth/permauth-in-go/pkg/server/store"
)

func TestAdminRoles(t *testing.T) {
	t.Run("listing requires Roles.GetAll", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Roles.GetAll").Return(false)

		rec := doRequest(srv, "GET", "/admin/roles", issueToken(t, srv, 1), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t,
			`{"error":"Access denied.","requiredPermission":"Roles.GetAll"}`,
			rec.Body.String())
	})

	t.Run("create role", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Roles.Create").Return(true)
		stores.roles.On("CreateRole", "Manager").Return(&store.Role{ID: 3, Name: "Manager"}, nil)

		rec := doRequest(srv, "POST", "/admin/roles", issueToken(t, srv, 1), `{"name":"Manager"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		stores.roles.AssertExpectations(t)
	})

	t.Run("duplicate role name returns 409", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Roles.Create").Return(true)
		stores.roles.On("CreateRole", "Manager").Return(nil, store.ErrDuplicateName)

		rec := doRequest(srv, "POST", "/admin/roles", issueToken(t, srv, 1), `{"name":"Manager"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("delete unknown role returns 404", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Roles.Delete").Return(true)
		stores.roles.On("DeleteRole", 99).Return(store.ErrNotFound)

		rec := doRequest(srv, "DELETE", "/admin/roles/99", issueToken(t, srv, 1), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGrantPermissionsToRole(t *testing.T) {
	t.Run("reports granted and skipped counts", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Roles.GrantPermissions").Return(true)
		stores.roles.On("RoleExists", 3).Return(true)
		stores.permissions.On("FindPermissionsByNames", []string{"Orders.Ship", "Products.GetAll"}).
			Return([]store.Permission{
				{ID: 10, Name: "Orders.Ship"},
				{ID: 11, Name: "Products.GetAll"},
			}, nil)
		stores.roles.On("GrantPermissions", 3, []int{10, 11}).Return(1, nil)

		rec := doRequest(srv, "POST", "/admin/roles/3/permissions", issueToken(t, srv, 1),
			`{"permissions":["Orders.Ship","Products.GetAll"]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"granted":1,"skipped":1}`, rec.Body.String())
	})

	t.Run("unknown permission names return 400", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Roles.GrantPermissions").Return(true)
		stores.roles.On("RoleExists", 3).Return(true)
		stores.permissions.On("FindPermissionsByNames", []string{"Orders.Ship", "Nope.Nope"}).
			Return([]store.Permission{{ID: 10, Name: "Orders.Ship"}}, nil)

		rec := doRequest(srv, "POST", "/admin/roles/3/permissions", issueToken(t, srv, 1),
			`{"permissions":["Orders.Ship","Nope.Nope"]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t,
			`{"error":"Unknown permission names.","unknownPermissions":["Nope.Nope"]}`,
			rec.Body.String())
		stores.roles.AssertNotCalled(t, "GrantPermissions", mock.Anything, mock.Anything)
	})

	t.Run("revoke removes the grant", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Roles.RevokePermission").Return(true)
		stores.roles.On("RevokePermission", 3, "Orders.Ship").Return(nil)

		rec := doRequest(srv, "DELETE", "/admin/roles/3/permissions/Orders.Ship",
			issueToken(t, srv, 1), "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		stores.roles.AssertExpectations(t)
	})
}

func TestGrantRoleToUser(t *testing.T) {
	t.Run("grant by role name", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Users.GrantRole").Return(true)
		stores.roles.On("FindRoleByName", "Manager").Return(&store.Role{ID: 3, Name: "Manager"}, nil)
		stores.users.On("GrantRole", 7, 3).Return(nil)

		rec := doRequest(srv, "POST", "/admin/users/7/roles", issueToken(t, srv, 1),
			`{"role":"Manager"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		stores.users.AssertExpectations(t)
	})

	t.Run("unknown role name returns 400", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Users.GrantRole").Return(true)
		stores.roles.On("FindRoleByName", "Nope").Return(nil, store.ErrNotFound)

		rec := doRequest(srv, "POST", "/admin/users/7/roles", issueToken(t, srv, 1),
			`{"role":"Nope"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("revoke missing grant returns 404", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 1, "Users.RevokeRole").Return(true)
		stores.users.On("RevokeRole", 7, "Manager").Return(store.ErrNotFound)

		rec := doRequest(srv, "DELETE", "/admin/users/7/roles/Manager",
			issueToken(t, srv, 1), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListPermissionsCatalog(t *testing.T) {
	srv, stores := newTestServer(t)
	stores.authz.On("HasPermission", 1, "Permissions.GetAll").Return(true)
	stores.permissions.On("ListPermissions").Return([]store.Permission{
		{ID: 1, Name: "Orders.GetAll", Module: "Orders", Action: "GetAll"},
	}, nil)

	rec := doRequest(srv, "GET", "/admin/permissions", issueToken(t, srv, 1), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Orders.GetAll"`)
}
