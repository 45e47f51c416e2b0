// Package server provides the HTTP server for the permauth API.
//
// It uses gorilla/mux for routing and installs the permission gate
// middleware in front of every registered route.
//
// # Server Setup
//
//	srv := server.NewServer(issuer, stores, db, host, port)
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - Registry: the route metadata table read by the gate and the
//     catalog synchronizer
//   - Issuer: token signing and verification
//   - Stores: storage interfaces for the RBAC graph, catalog, roles,
//     users and health probe
//   - DB: database connection
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the auth, admin and demo endpoints including:
//
//   - /auth/register, /auth/login, /auth/me - registration and login
//   - /admin/permissions - the permission catalog
//   - /admin/roles - role management and permission grants
//   - /admin/users - user role grants
//   - /products, /orders - permission-guarded demo resources
//   - /health - anonymous liveness probe
package server
