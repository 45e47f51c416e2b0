package endpoints

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/permauth/permauth-in-go/pkg/authn"
	"github.com/permauth/permauth-in-go/pkg/server"
)

type testStores struct {
	authz       *MockAuthzStore
	permissions *MockPermissionsStore
	roles       *MockRolesStore
	users       *MockUsersStore
	health      *MockHealthStore
}

// newTestServer wires a full server with mock stores and all endpoints
// registered, so requests travel through the real router and gate.
func newTestServer(t *testing.T) (*server.Server, *testStores) {
	t.Helper()

	stores := &testStores{
		authz:       NewMockAuthzStore(),
		permissions: NewMockPermissionsStore(),
		roles:       NewMockRolesStore(),
		users:       NewMockUsersStore(),
		health:      NewMockHealthStore(),
	}

	issuer := authn.NewIssuer([]byte("test-secret"), "permauth", "permauth", time.Hour)
	srv := server.NewServer(issuer, server.Stores{
		Authz:       stores.authz,
		Permissions: stores.permissions,
		Roles:       stores.roles,
		Users:       stores.users,
		Health:      stores.health,
	}, nil, "127.0.0.1", "0")

	RegisterAll(srv)
	return srv, stores
}

// doRequest runs a request through the server router. A non-empty token
// is attached as a bearer credential.
func doRequest(srv *server.Server, method, path, token string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	return rec
}

// issueToken mints a valid token for the test server's issuer.
func issueToken(t *testing.T, srv *server.Server, userID int) string {
	t.Helper()

	token, err := srv.Issuer.IssueToken(userID, "pat@example.com", "pat")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}
