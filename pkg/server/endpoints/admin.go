package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// CreateRoleRequest is the body of POST /admin/roles.
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// GrantPermissionsRequest is the body of POST /admin/roles/{id}/permissions.
type GrantPermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// GrantPermissionsResponse reports how a grant request landed. Grants
// already in place are counted as skipped, not errors.
type GrantPermissionsResponse struct {
	Granted int `json:"granted"`
	Skipped int `json:"skipped"`
}

// GrantRoleRequest is the body of POST /admin/users/{id}/roles.
type GrantRoleRequest struct {
	Role string `json:"role"`
}

// RegisterAdminEndpoints registers the catalog and grant/revoke
// administration endpoints. All of them are permission-guarded by
// convention, e.g. GET /admin/roles requires "Roles.GetAll".
func RegisterAdminEndpoints(srv *server.Server) {
	permissions := srv.Stores.Permissions
	roles := srv.Stores.Roles
	users := srv.Stores.Users

	registerRoute(srv, "admin.permissions.getall",
		&routemeta.Meta{Group: "PermissionsController", Method: "GetAll"},
		"/admin/permissions", handleListPermissions(permissions), "GET")

	registerRoute(srv, "admin.roles.getall",
		&routemeta.Meta{Group: "RolesController", Method: "GetAll"},
		"/admin/roles", handleListRoles(roles), "GET")

	registerRoute(srv, "admin.roles.create",
		&routemeta.Meta{Group: "RolesController", Method: "Create"},
		"/admin/roles", handleCreateRole(roles), "POST")

	registerRoute(srv, "admin.roles.delete",
		&routemeta.Meta{Group: "RolesController", Method: "Delete"},
		"/admin/roles/{id:[0-9]+}", handleDeleteRole(roles), "DELETE")

	registerRoute(srv, "admin.roles.grant",
		&routemeta.Meta{Group: "RolesController", Method: "GrantPermissions"},
		"/admin/roles/{id:[0-9]+}/permissions", handleGrantPermissions(roles, permissions), "POST")

	registerRoute(srv, "admin.roles.revoke",
		&routemeta.Meta{Group: "RolesController", Method: "RevokePermission"},
		"/admin/roles/{id:[0-9]+}/permissions/{name}", handleRevokePermission(roles), "DELETE")

	registerRoute(srv, "admin.users.getall",
		&routemeta.Meta{Group: "UsersController", Method: "GetAll"},
		"/admin/users", handleListUsers(users), "GET")

	registerRoute(srv, "admin.users.grant",
		&routemeta.Meta{Group: "UsersController", Method: "GrantRole"},
		"/admin/users/{id:[0-9]+}/roles", handleGrantRole(users, roles), "POST")

	registerRoute(srv, "admin.users.revoke",
		&routemeta.Meta{Group: "UsersController", Method: "RevokeRole"},
		"/admin/users/{id:[0-9]+}/roles/{name}", handleRevokeRole(users), "DELETE")
}

func handleListPermissions(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		perms, err := permissions.ListPermissions()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list permissions.")
			return
		}
		respondWithJSON(w, http.StatusOK, perms)
	}
}

func handleListRoles(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := roles.ListRoles()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list roles.")
			return
		}
		respondWithJSON(w, http.StatusOK, all)
	}
}

func handleCreateRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Role name is required.")
			return
		}

		role, err := roles.CreateRole(body.Name)
		if errors.Is(err, store.ErrDuplicateName) {
			respondWithError(w, http.StatusConflict, "Role name already exists.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create role.")
			return
		}
		respondWithJSON(w, http.StatusCreated, role)
	}
}

func handleDeleteRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])

		err := roles.DeleteRole(id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Role not found.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete role.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGrantPermissions(roles store.RolesStore, permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])

		var body GrantPermissionsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Permissions) == 0 {
			respondWithError(w, http.StatusBadRequest, "At least one permission name is required.")
			return
		}

		if !roles.RoleExists(id) {
			respondWithError(w, http.StatusNotFound, "Role not found.")
			return
		}

		found, err := permissions.FindPermissionsByNames(body.Permissions)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to grant permissions.")
			return
		}
		if len(found) != len(body.Permissions) {
			known := make(map[string]struct{}, len(found))
			for _, perm := range found {
				known[perm.Name] = struct{}{}
			}
			var unknown []string
			for _, name := range body.Permissions {
				if _, ok := known[name]; !ok {
					unknown = append(unknown, name)
				}
			}
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":              "Unknown permission names.",
				"unknownPermissions": unknown,
			})
			return
		}

		ids := make([]int, 0, len(found))
		for _, perm := range found {
			ids = append(ids, perm.ID)
		}

		granted, err := roles.GrantPermissions(id, ids)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to grant permissions.")
			return
		}
		respondWithJSON(w, http.StatusOK, GrantPermissionsResponse{
			Granted: granted,
			Skipped: len(ids) - granted,
		})
	}
}

func handleRevokePermission(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, _ := strconv.Atoi(vars["id"])

		err := roles.RevokePermission(id, vars["name"])
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Grant not found.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to revoke permission.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListUsers(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := users.ListUsers()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list users.")
			return
		}
		respondWithJSON(w, http.StatusOK, all)
	}
}

func handleGrantRole(users store.UsersStore, roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])

		var body GrantRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Role == "" {
			respondWithError(w, http.StatusBadRequest, "Role name is required.")
			return
		}

		role, err := roles.FindRoleByName(body.Role)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusBadRequest, "Unknown role name.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to grant role.")
			return
		}

		if err := users.GrantRole(id, role.ID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to grant role.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRevokeRole(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, _ := strconv.Atoi(vars["id"])

		err := users.RevokeRole(id, vars["name"])
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Grant not found.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to revoke role.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
