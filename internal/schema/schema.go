// Package schema embeds the versioned SQL migrations for the users and todos tables.
package schema

import (
	"embed"

	"github.com/kbukum/todoapi/database/migration"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Source returns the migrations for a database driver ("sqlite" or "postgres").
func Source(driver string) migration.Source {
	return migration.Source{FS: files, Path: driver}
}
