package sqlengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/libshelf/library-inventory-go/inventory"
)

const sqliteAuthorsDDL = `CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
)`

const sqliteBooksDDL = `CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	author_id INTEGER NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
	isbn TEXT NOT NULL UNIQUE,
	copies_available INTEGER NOT NULL DEFAULT 1
)`

const postgresAuthorsDDL = `CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
)`

const postgresBooksDDL = `CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	author_id BIGINT NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
	isbn TEXT NOT NULL UNIQUE,
	copies_available INTEGER NOT NULL DEFAULT 1
)`

// CreateSchema creates the authors and books tables if they do not exist.
// Cascade delete of an author's books is declared on the foreign key here;
// for SQLite the connection must have foreign key enforcement enabled
// (the _foreign_keys DSN parameter) for it to take effect.
func (s Store) CreateSchema(ctx context.Context) error {
	for _, ddl := range s.schemaStatements() {
		if _, execErr := s.db.Exec(ctx, ddl); execErr != nil {
			if s.logger != nil {
				s.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, ddl)
			}

			return errors.Join(inventory.ErrCreatingSchemaFailed, execErr)
		}
	}

	s.logOperation(logActionCreateSchema)

	return nil
}

// schemaStatements returns the dialect-specific DDL, authors table first
// so the books foreign key has its target.
func (s Store) schemaStatements() []string {
	switch s.dialect {
	case DialectPostgres:
		return []string{
			fmt.Sprintf(postgresAuthorsDDL, s.authorsTableName),
			fmt.Sprintf(postgresBooksDDL, s.booksTableName, s.authorsTableName),
		}

	default:
		return []string{
			fmt.Sprintf(sqliteAuthorsDDL, s.authorsTableName),
			fmt.Sprintf(sqliteBooksDDL, s.booksTableName, s.authorsTableName),
		}
	}
}
