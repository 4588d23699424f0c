package db

import "embed"

// Migrations holds the goose migrations, one directory per dialect.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS

// Dir returns the embedded migration directory for a database driver name.
func Dir(driver string) string {
	return "migrations/" + driver
}
