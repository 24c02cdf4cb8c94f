// Package adapters provides database adapter implementations for the inventory store.
//
// This package implements the adapter pattern to support multiple database libraries:
// sqlx.DB, sql.DB, and pgxpool.Pool. All adapters provide equivalent functionality
// through a common DBAdapter interface, allowing the store to work with a SQLite
// file database as well as PostgreSQL without caring which library drives it.
package adapters
