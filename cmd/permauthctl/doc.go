// Package main provides the permauthctl CLI for the permauth
// authorization server.
//
// permauth is an RBAC service: every registered HTTP route requires a
// permission of the form <Module>.<Action>, users hold permissions
// through roles, and the permission catalog is synchronized from the
// registered routes at startup.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/middleware: the permission gate
//   - pkg/server/store: storage interfaces and gorm implementations
//   - pkg/routemeta: the route registration table and naming convention
//   - pkg/sync: permission catalog synchronizer
//   - pkg/authn: token issuing and verification
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Point at Postgres and set a signing secret
//	export DATABASE_URL=postgres://localhost/permauth
//	export PERMAUTH_JWT_SECRET=$(openssl rand -hex 32)
//
//	# Run database migrations
//	permauthctl db migrate
//
//	# Start the server (runs the catalog sync first)
//	permauthctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - PERMAUTH_JWT_SECRET: HMAC signing secret for tokens
//   - PERMAUTH_BIND_ADDRESS, PERMAUTH_PORT: listen address
//   - PERMAUTH_TOKEN_TTL: token lifetime in seconds
//   - PERMAUTH_SYNC_ON_START: set to "false" to skip the catalog sync
//   - PERMAUTH_LOG_LEVEL: set to "debug" for SQL logging
package main
