// Package migrations embeds the SQL schema so tests and tooling apply the same files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// InitUp is the schema creation script.
const InitUp = "001_init.up.sql"
