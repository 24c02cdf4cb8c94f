// Package sqlengine implements the relational storage engine for the library
// inventory. It builds all CRUD queries with goqu, executes them through a
// database adapter (sqlx.DB, sql.DB, or pgxpool.Pool), and maps rows to the
// record types of the inventory package.
//
// The engine speaks two SQL dialects: sqlite3 for the default local file
// database and postgres for server deployments. Referential integrity between
// books and authors is enforced by the schema (foreign key with cascading
// delete), while the create-book operation additionally verifies the author
// reference so the caller gets a distinct error for it.
package sqlengine
