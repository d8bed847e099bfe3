// Package sqlite keeps detail selections in a local SQLite database so a
// record opened in one view survives a restart of the process.
//
// The driver is modernc.org/sqlite, so the binary stays CGO-free.
//
// # Layout
//
// One table, sessions, keyed by (session_id, key) with an updated_at
// column in Unix nanoseconds. Prune deletes rows older than a cutoff; the
// serve command calls it on a ticker. The schema lives in migrations/
// and is applied on open.
//
// The database file defaults to ~/.hioder/data/sessions.db and is opened
// in WAL mode with a five second busy timeout.
package sqlite
