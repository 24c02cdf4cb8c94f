// Command inventoryd runs the library inventory REST API.
//
// Configuration is read from INVENTORY_* environment variables; by default it
// serves on 127.0.0.1:8001 backed by a SQLite file at ./library.db.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/libshelf/library-inventory-go/config"
	"github.com/libshelf/library-inventory-go/httpapi"
	"github.com/libshelf/library-inventory-go/inventory/sqlengine"
	"github.com/libshelf/library-inventory-go/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	store, cleanup, buildErr := buildStore(cfg, log)
	if buildErr != nil {
		log.Error("failed to set up storage", "engine", string(cfg.Engine), "error", buildErr)
		os.Exit(1)
	}
	defer cleanup()

	if schemaErr := store.CreateSchema(context.Background()); schemaErr != nil {
		log.Error("failed to create schema", "error", schemaErr)
		os.Exit(1)
	}

	api := httpapi.NewAPI(cfg.ListenAddr, store, httpapi.WithLogger(log))

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- api.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case serveErr := <-serveErrCh:
		if serveErr != nil {
			log.Error("server failed", "error", serveErr)
			os.Exit(1)
		}

	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if stopErr := api.Stop(shutdownCtx); stopErr != nil {
			log.Error("shutdown failed", "error", stopErr)
		}
	}
}

// buildStore constructs the storage engine selected by the configuration and
// returns it together with a cleanup function closing the database handle.
func buildStore(cfg config.Config, log *slog.Logger) (sqlengine.Store, func(), error) {
	nopCleanup := func() {}

	switch cfg.Engine {
	case config.EnginePostgres:
		db, err := config.PostgresSQLXConfig(cfg.PostgresDSN)
		if err != nil {
			return sqlengine.Store{}, nopCleanup, err
		}

		store, storeErr := sqlengine.NewStoreFromSQLX(db, sqlengine.DialectPostgres, sqlengine.WithLogger(log))
		if storeErr != nil {
			_ = db.Close()
			return sqlengine.Store{}, nopCleanup, storeErr
		}

		return store, func() { _ = db.Close() }, nil

	case config.EnginePostgresPGX:
		pool, err := config.PostgresPGXPoolConfig(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return sqlengine.Store{}, nopCleanup, err
		}

		store, storeErr := sqlengine.NewStoreFromPGXPool(pool, sqlengine.WithLogger(log))
		if storeErr != nil {
			pool.Close()
			return sqlengine.Store{}, nopCleanup, storeErr
		}

		return store, pool.Close, nil

	default:
		db, err := config.SQLiteSQLXConfig(cfg.SQLitePath)
		if err != nil {
			return sqlengine.Store{}, nopCleanup, err
		}

		store, storeErr := sqlengine.NewStoreFromSQLX(db, sqlengine.DialectSQLite, sqlengine.WithLogger(log))
		if storeErr != nil {
			_ = db.Close()
			return sqlengine.Store{}, nopCleanup, storeErr
		}

		return store, func() { _ = db.Close() }, nil
	}
}
