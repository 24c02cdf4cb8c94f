package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/libshelf/library-inventory-go/inventory"
	"github.com/libshelf/library-inventory-go/logging"
)

const defaultReadHeaderTimeout = 10 * time.Second

// Store is the storage surface the API needs. sqlengine.Store implements it.
type Store interface {
	CreateAuthor(ctx context.Context, input inventory.AuthorInput) (inventory.Author, error)
	GetAuthor(ctx context.Context, id int64) (inventory.Author, error)
	ListAuthors(ctx context.Context) (inventory.Authors, error)
	DeleteAuthor(ctx context.Context, id int64) error

	CreateBook(ctx context.Context, input inventory.BookInput) (inventory.Book, error)
	GetBook(ctx context.Context, id int64) (inventory.Book, error)
	ListBooks(ctx context.Context) (inventory.Books, error)
	UpdateBook(ctx context.Context, id int64, input inventory.BookInput) (inventory.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// API serves the REST endpoints of the library inventory service.
type API struct {
	store      Store
	addr       string
	httpServer *http.Server
	log        *slog.Logger
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger for the API. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAPI creates a new API serving the given store on addr.
func NewAPI(addr string, store Store, opts ...Option) *API {
	a := &API{
		store: store,
		addr:  addr,
		log:   logging.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)

	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.withRequestLog(mux),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	return a
}

// Handler returns the fully routed handler, including middleware.
// It is what the server serves and is handy for embedding and tests.
func (a *API) Handler() http.Handler {
	return a.httpServer.Handler
}

// Start begins serving HTTP requests and blocks until the server stops.
// A closed server returns nil, any other serve failure is returned as-is.
func (a *API) Start() error {
	a.log.Info("inventory api listening", "addr", a.addr)

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop gracefully shuts down the HTTP server, waiting for in-flight
// requests until the context is done.
func (a *API) Stop(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}

// handleHealth reports service liveness.
func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
