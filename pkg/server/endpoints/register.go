package endpoints

import (
	"net/http"

	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server"
	"github.com/permauth/permauth-in-go/pkg/server/middleware"
)

// RegisterAll registers all API endpoints on the server and installs
// the permission gate in front of them. Route metadata lands in the
// server's registry, which both the gate and the catalog synchronizer
// read.
func RegisterAll(srv *server.Server) {
	gate := middleware.NewPermissionGate(srv.Registry, srv.Issuer, srv.Stores.Authz)
	srv.Router.Use(gate.Middleware)

	RegisterAuthEndpoints(srv)
	RegisterAdminEndpoints(srv)
	RegisterProductsEndpoints(srv)
	RegisterOrdersEndpoints(srv)
	RegisterStatusEndpoints(srv)
}

// registerRoute registers a handler under a route name and records its
// metadata. The route name ties the mux route to its registry entry.
func registerRoute(
	srv *server.Server,
	name string,
	meta *routemeta.Meta,
	path string,
	handler http.HandlerFunc,
	methods ...string,
) {
	srv.Router.HandleFunc(path, handler).Methods(methods...).Name(name)
	srv.Registry.Add(name, meta)
}
