// Package migrations embeds the SQL migrations of the session database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
