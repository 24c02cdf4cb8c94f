// Route registration for the inventory API.

package httpapi

import (
	"net/http"
)

// registerRoutes sets up all API routes. Collection endpoints are registered
// with and without a trailing slash so both forms work.
func (a *API) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.handleHealth)

	// Author management
	mux.HandleFunc("POST /authors", a.handleCreateAuthor)
	mux.HandleFunc("POST /authors/{$}", a.handleCreateAuthor)
	mux.HandleFunc("GET /authors", a.handleListAuthors)
	mux.HandleFunc("GET /authors/{$}", a.handleListAuthors)
	mux.HandleFunc("GET /authors/{id}", a.handleGetAuthor)
	mux.HandleFunc("DELETE /authors/{id}", a.handleDeleteAuthor)

	// Book management
	mux.HandleFunc("POST /books", a.handleCreateBook)
	mux.HandleFunc("POST /books/{$}", a.handleCreateBook)
	mux.HandleFunc("GET /books", a.handleListBooks)
	mux.HandleFunc("GET /books/{$}", a.handleListBooks)
	mux.HandleFunc("GET /books/{id}", a.handleGetBook)
	mux.HandleFunc("PUT /books/{id}", a.handleUpdateBook)
	mux.HandleFunc("DELETE /books/{id}", a.handleDeleteBook)
}
