package migrations

import "embed"

// FS embeds the SQL migrations applied by sqlite.DB.Migrate.
//
//go:embed *.sql
var FS embed.FS
