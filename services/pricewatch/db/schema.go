package db

import (
	_ "embed"

	_ "modernc.org/sqlite"
)

// the table name and layout predate this service, existing snapshot files
// must stay readable as-is.
//
//go:embed schema.sql
var Schema string
