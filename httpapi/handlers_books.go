package httpapi

import (
	"net/http"

	"github.com/libshelf/library-inventory-go/inventory"
)

// BookRequest is the request body for creating a book and for replacing one
// via PUT. An omitted copies_available selects the default of one copy.
type BookRequest struct {
	Title           string `json:"title"`
	AuthorID        int64  `json:"author_id"`
	ISBN            string `json:"isbn"`
	CopiesAvailable *int   `json:"copies_available,omitempty"`
}

// bookInput decodes and validates a book request body. On failure it writes
// a 400 response and reports false.
func bookInput(w http.ResponseWriter, r *http.Request) (inventory.BookInput, bool) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON, "invalid request body")
		return inventory.BookInput{}, false
	}

	input, buildErr := inventory.BuildBookInput(req.Title, req.AuthorID, req.ISBN, req.CopiesAvailable)
	if buildErr != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidInput, buildErr.Error())
		return inventory.BookInput{}, false
	}

	return input, true
}

// handleCreateBook creates a new book referencing an existing author.
func (a *API) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	input, ok := bookInput(w, r)
	if !ok {
		return
	}

	book, err := a.store.CreateBook(r.Context(), input)
	if err != nil {
		a.storeError(w, err, "create book")
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// handleListBooks returns all books.
func (a *API) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := a.store.ListBooks(r.Context())
	if err != nil {
		a.storeError(w, err, "list books")
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// handleGetBook returns a single book by id.
func (a *API) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	book, err := a.store.GetBook(r.Context(), id)
	if err != nil {
		a.storeError(w, err, "get book")
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// handleUpdateBook replaces all fields of a book with the request body.
func (a *API) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	input, ok := bookInput(w, r)
	if !ok {
		return
	}

	book, err := a.store.UpdateBook(r.Context(), id, input)
	if err != nil {
		a.storeError(w, err, "update book")
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// handleDeleteBook deletes a book by id.
func (a *API) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.store.DeleteBook(r.Context(), id); err != nil {
		a.storeError(w, err, "delete book")
		return
	}

	writeNoContent(w)
}
