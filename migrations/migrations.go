// Package migrations embeds the SQL schema migrations applied by the
// server at startup and by the bootstrap binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
