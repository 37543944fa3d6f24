// Package migrations embeds the goose migrations for the SQLite user store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
