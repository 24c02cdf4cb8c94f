package httpapi

import (
	"net/http"
	"strconv"

	"github.com/libshelf/library-inventory-go/inventory"
)

// CreateAuthorRequest is the request body for creating an author.
type CreateAuthorRequest struct {
	Name string `json:"name"`
}

// handleCreateAuthor creates a new author.
func (a *API) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON, "invalid request body")
		return
	}

	input, buildErr := inventory.BuildAuthorInput(req.Name)
	if buildErr != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidInput, buildErr.Error())
		return
	}

	author, err := a.store.CreateAuthor(r.Context(), input)
	if err != nil {
		a.storeError(w, err, "create author")
		return
	}

	writeJSON(w, http.StatusCreated, author)
}

// handleListAuthors returns all authors.
func (a *API) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := a.store.ListAuthors(r.Context())
	if err != nil {
		a.storeError(w, err, "list authors")
		return
	}

	writeJSON(w, http.StatusOK, authors)
}

// handleGetAuthor returns a single author by id.
func (a *API) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	author, err := a.store.GetAuthor(r.Context(), id)
	if err != nil {
		a.storeError(w, err, "get author")
		return
	}

	writeJSON(w, http.StatusOK, author)
}

// handleDeleteAuthor deletes an author and, through the schema's cascading
// foreign key, all books that referenced it.
func (a *API) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.store.DeleteAuthor(r.Context(), id); err != nil {
		a.storeError(w, err, "delete author")
		return
	}

	writeNoContent(w)
}

// pathID parses the {id} path value. On failure it writes a 400 response
// and reports false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, parseErr := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if parseErr != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidID, "id must be an integer")
		return 0, false
	}

	return id, true
}
