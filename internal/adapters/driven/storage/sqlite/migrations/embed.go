// Package migrations embeds the schema migrations for the working-copy
// store.
package migrations

import "embed"

// FS holds the SQL migration files, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
