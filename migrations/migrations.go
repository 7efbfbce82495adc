// Package migrations embeds the SQL schema so the binary and the tests share one source.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
