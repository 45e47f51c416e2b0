// Package db embeds the SQL migrations that create the permission-auth
// schema. The permauthctl db commands apply them with golang-migrate.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
