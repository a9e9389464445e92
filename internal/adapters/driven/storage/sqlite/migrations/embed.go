// Package migrations holds the versioned schema of drafter.db as pairs of
// NNN_name.up.sql and NNN_name.down.sql files.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
