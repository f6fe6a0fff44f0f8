// Package migrations embeds the SQL schema files for the relational backends.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
