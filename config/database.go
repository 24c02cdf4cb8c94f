package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

var ErrOpeningDatabaseFailed = errors.New("failed to open database connection")
var ErrPingingDatabaseFailed = errors.New("failed to ping database")

// SQLiteSQLXConfig creates a configured *sqlx.DB for the SQLite database file
// at path. The DSN enables foreign key enforcement, which the cascading
// delete of an author's books relies on, and a busy timeout so concurrent
// writers wait instead of failing immediately.
func SQLiteSQLXConfig(path string) (*sqlx.DB, error) {
	const defaultMaxOpenConnections = 10
	const defaultMaxIdleConnections = 5
	const defaultMaxConnLifetime = time.Hour

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)

	// Test the connection
	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrPingingDatabaseFailed, pingErr)
	}

	return db, nil
}

// SQLiteSQLDBConfig creates a configured *sql.DB for the SQLite database file
// at path, for callers on the plain database/sql API. Uses the same DSN and
// pool settings as SQLiteSQLXConfig.
func SQLiteSQLDBConfig(path string) (*sql.DB, error) {
	const defaultMaxOpenConnections = 10
	const defaultMaxIdleConnections = 5
	const defaultMaxConnLifetime = time.Hour

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)

	// Test the connection
	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrPingingDatabaseFailed, pingErr)
	}

	return db, nil
}

// PostgresSQLXConfig creates a configured *sqlx.DB for the PostgreSQL
// database at dsn.
func PostgresSQLXConfig(dsn string) (*sqlx.DB, error) {
	const defaultMaxOpenConnections = 50
	const defaultMaxIdleConnections = 10
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	// Test the connection
	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrPingingDatabaseFailed, pingErr)
	}

	return db, nil
}

// PostgresPGXPoolConfig creates a configured *pgxpool.Pool for the PostgreSQL
// database at dsn.
func PostgresPGXPoolConfig(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const defaultMaxConnections = int32(50)
	const defaultMinConnections = int32(2)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	// Test the connection
	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, errors.Join(ErrPingingDatabaseFailed, pingErr)
	}

	return pool, nil
}
