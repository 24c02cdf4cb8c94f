package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/libshelf/library-inventory-go/inventory"
	"github.com/libshelf/library-inventory-go/inventory/sqlengine/internal/adapters"
)

const (
	defaultAuthorsTableName = "authors"
	defaultBooksTableName   = "books"

	logMsgBuildQueryFailed   = "failed to build sql query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database statement execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "inventory store operation: "

	logMsgAuthorCreated  = "author created"
	logMsgAuthorDeleted  = "author deleted"
	logMsgBookCreated    = "book created"
	logMsgBookUpdated    = "book updated"
	logMsgBookDeleted    = "book deleted"
	logMsgInvalidAuthor  = "book rejected, author reference does not exist"
	logMsgRecordsListed  = "records listed"

	logAttrError       = "error"
	logAttrQuery       = "query"
	logAttrAuthorID    = "author_id"
	logAttrBookID      = "book_id"
	logAttrRecordCount = "record_count"
	logAttrDurationMS  = "duration_ms"
	logAttrTable       = "table"

	logActionCreateAuthor = "create author"
	logActionDeleteAuthor = "delete author"
	logActionCreateBook   = "create book"
	logActionUpdateBook   = "update book"
	logActionDeleteBook   = "delete book"
	logActionSelect       = "select"
	logActionCreateSchema = "create schema"

	colID              = "id"
	colName            = "name"
	colTitle           = "title"
	colAuthorID        = "author_id"
	colISBN            = "isbn"
	colCopiesAvailable = "copies_available"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// Dialect selects the goqu SQL dialect the store builds queries for.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Store is the relational storage engine for authors and books.
// It leverages a database adapter and supports customizable logging and table names.
type Store struct {
	db               adapters.DBAdapter
	dialect          Dialect
	authorsTableName string
	booksTableName   string
	logger           Logger
}

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithAuthorsTableName sets the table name for author records.
func WithAuthorsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return inventory.ErrEmptyTableName
		}

		s.authorsTableName = tableName

		return nil
	}
}

// WithBooksTableName sets the table name for book records.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return inventory.ErrEmptyTableName
		}

		s.booksTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Record counts, durations, rejected references (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, dialect Dialect, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, inventory.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), dialect, options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, dialect Dialect, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, inventory.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialect, options...)
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
// The dialect is always postgres.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, inventory.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), DialectPostgres, options...)
}

func newStore(db adapters.DBAdapter, dialect Dialect, options ...Option) (Store, error) {
	if dialect != DialectSQLite && dialect != DialectPostgres {
		return Store{}, inventory.ErrUnsupportedDialect
	}

	s := Store{
		db:               db,
		dialect:          dialect,
		authorsTableName: defaultAuthorsTableName,
		booksTableName:   defaultBooksTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// builder returns a goqu dialect wrapper for the configured dialect.
func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(string(s.dialect))
}

// executeQuery executes the SQL query and returns rows with timing information.
func (s Store) executeQuery(ctx context.Context, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionSelect, duration)

	if queryErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(inventory.ErrQueryingStoreFailed, queryErr)
	}

	return rows, nil
}

// executeStatement executes the SQL statement and returns the rows affected count.
func (s Store) executeStatement(ctx context.Context, sqlQuery string, action string) (rowsAffectedInt64, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, action, duration)

	if execErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(inventory.ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, errors.Join(inventory.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logBuildQueryFailed logs a query building failure and wraps it in the sentinel error.
func (s Store) logBuildQueryFailed(toSQLErr error) error {
	if s.logger != nil {
		s.logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
	}

	return errors.Join(inventory.ErrBuildingQueryFailed, toSQLErr)
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (s Store) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, s.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s Store) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
