// Package sqlite provides the SQLite-backed session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The bearer token and the serialised user
// profile live in one table and are always written and removed together inside a
// transaction, so a crash can never leave a token without its profile.
//
// # Schema
//
// The schema is managed by golang-migrate from the embedded migrations/ directory.
// Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.servilink/data/session.db
//
// # Watching
//
// Watch reports changes made to the database by other processes, so a running
// TUI can pick up a login or logout performed from the CLI.
package sqlite
