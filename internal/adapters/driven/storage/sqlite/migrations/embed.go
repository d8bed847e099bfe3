// Package migrations holds the schema for the session store. Files are
// applied in name order; only the .up.sql halves are run.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
