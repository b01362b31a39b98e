// Package pagesmith exposes repository-level assets embedded into the binary.
package pagesmith

import "embed"

// Migrations contains the SQL migration files applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
