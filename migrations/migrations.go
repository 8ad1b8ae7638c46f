// Package migrations embeds the schema migrations of the SQL backends.
package migrations

import "embed"

// FS holds one directory per database: postgres and sqlite.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
