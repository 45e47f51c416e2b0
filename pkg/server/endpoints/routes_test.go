package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/permauth/permauth-in-go/pkg/sync"
)

func TestOrdersRoutes(t *testing.T) {
	t.Run("reading one order needs no credential at all", func(t *testing.T) {
		srv, stores := newTestServer(t)

		rec := doRequest(srv, "GET", "/orders/1", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		stores.authz.AssertNotCalled(t, "HasPermission", mock.Anything, mock.Anything)
	})

	t.Run("placing an order needs no credential at all", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(srv, "POST", "/orders", "", `{"item":"Monitor"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("shipping requires the explicit Orders.Ship permission", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 5, "Orders.Ship").Return(false)

		rec := doRequest(srv, "POST", "/orders/1/ship", issueToken(t, srv, 5), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t,
			`{"error":"Access denied.","requiredPermission":"Orders.Ship"}`,
			rec.Body.String())
	})

	t.Run("granting Orders.Ship flips the same request to allowed", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 5, "Orders.Ship").Return(true)

		rec := doRequest(srv, "POST", "/orders/1/ship", issueToken(t, srv, 5), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"shipped":true`)
	})
}

func TestProductsRoutes(t *testing.T) {
	t.Run("listing requires the convention-derived permission", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.authz.On("HasPermission", 5, "Products.GetAll").Return(true)

		rec := doRequest(srv, "GET", "/products", issueToken(t, srv, 5), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		stores.authz.AssertExpectations(t)
	})

	t.Run("each verb maps to its own permission", func(t *testing.T) {
		srv, stores := newTestServer(t)
		token := issueToken(t, srv, 5)

		stores.authz.On("HasPermission", 5, "Products.Create").Return(true)
		stores.authz.On("HasPermission", 5, "Products.Delete").Return(false)

		rec := doRequest(srv, "POST", "/products", token, `{"name":"Mouse","price":19.9}`)
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(srv, "DELETE", "/products/1", token, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHealthRoute(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.health.On("Ping").Return(nil)

		rec := doRequest(srv, "GET", "/health", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("unreachable storage", func(t *testing.T) {
		srv, stores := newTestServer(t)
		stores.health.On("Ping").Return(errors.New("dial tcp: refused"))

		rec := doRequest(srv, "GET", "/health", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"ok":false}`, rec.Body.String())
	})
}

// The registered routes are the catalog synchronizer's input; this pins
// the full discovered set for the service as wired.
func TestRegisteredRoutesDiscovery(t *testing.T) {
	srv, _ := newTestServer(t)

	desired := sync.NewSyncer(srv.Registry, nil).Discover()
	names := make([]string, 0, len(desired))
	for _, perm := range desired {
		names = append(names, perm.Name)
	}

	assert.ElementsMatch(t, []string{
		"Auth.Register",
		"Auth.Login",
		"Permissions.GetAll",
		"Roles.GetAll",
		"Roles.Create",
		"Roles.Delete",
		"Roles.GrantPermissions",
		"Roles.RevokePermission",
		"Users.GetAll",
		"Users.GrantRole",
		"Users.RevokeRole",
		"Products.GetAll",
		"Products.GetById",
		"Products.Create",
		"Products.Update",
		"Products.Delete",
		"Orders.GetAll",
		"Orders.GetById",
		"Orders.Create",
		"Orders.Ship",
	}, names, "skipped and anonymous routes are still discovered; only non-actionable and ungrouped routes stay out")
}
