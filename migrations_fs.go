package parkhub

import (
	"embed"
	"io/fs"
)

// migrationsFS contains the client storage schema, including the sqlite
// dialect alternatives under data/sql/migrations/sqlite.
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the full embedded migration tree.
func GetMigrationsFS() fs.FS {
	return migrationsFS
}

// GetSQLiteMigrationsFS returns the sqlite dialect migration tree, ready
// to hand to a persistence client.
func GetSQLiteMigrationsFS() (fs.FS, error) {
	return fs.Sub(migrationsFS, "data/sql/migrations/sqlite")
}
