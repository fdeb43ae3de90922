// Package migrations embeds the SQL schema files so the compiled server
// binary can migrate a fresh database without external assets.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
