package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libshelf/library-inventory-go/config"
	"github.com/libshelf/library-inventory-go/inventory"
	"github.com/libshelf/library-inventory-go/inventory/sqlengine"
)

// newTestAPI builds an API backed by a fresh SQLite database in a temp dir.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	db, openErr := config.SQLiteSQLXConfig(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, openErr)
	t.Cleanup(func() { _ = db.Close() })

	store, storeErr := sqlengine.NewStoreFromSQLX(db, sqlengine.DialectSQLite)
	require.NoError(t, storeErr)
	require.NoError(t, store.CreateSchema(context.Background()))

	return NewAPI("127.0.0.1:0", store)
}

// doRequest runs a request through the full handler, including routing.
func doRequest(api *API, method string, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	return rec
}

func createAuthor(t *testing.T, api *API, name string) inventory.Author {
	t.Helper()

	rec := doRequest(api, http.MethodPost, "/authors/", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var author inventory.Author
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &author))

	return author
}

func createBook(t *testing.T, api *API, body string) inventory.Book {
	t.Helper()

	rec := doRequest(api, http.MethodPost, "/books/", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var book inventory.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))

	return book
}

func Test_CreateAuthor_ThenGetByID(t *testing.T) {
	api := newTestAPI(t)

	created := createAuthor(t, api, "Ursula K. Le Guin")
	assert.Positive(t, created.ID)

	rec := doRequest(api, http.MethodGet, "/authors/"+strconv.FormatInt(created.ID, 10), "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var fetched inventory.Author
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.Name, fetched.Name)
}

func Test_CreateAuthor_MissingName(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodPost, "/authors/", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errCodeInvalidInput, resp.Error)
}

func Test_CreateAuthor_InvalidJSON(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodPost, "/authors/", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_CreateAuthor_DuplicateName(t *testing.T) {
	api := newTestAPI(t)

	createAuthor(t, api, "Italo Calvino")

	rec := doRequest(api, http.MethodPost, "/authors/", `{"name":"Italo Calvino"}`)

	// Uniqueness violations are left to the store and not translated.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	listRec := doRequest(api, http.MethodGet, "/authors/", "")
	var authors inventory.Authors
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &authors))
	assert.Len(t, authors, 1)
}

func Test_ListAuthors_EmptyIsJSONArray(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodGet, "/authors/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func Test_GetAuthor_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodGet, "/authors/12345", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_GetAuthor_NonNumericID(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodGet, "/authors/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errCodeInvalidID, resp.Error)
}

func Test_DeleteAuthor_CascadesToBooks(t *testing.T) {
	api := newTestAPI(t)

	author := createAuthor(t, api, "Octavia E. Butler")
	authorID := strconv.FormatInt(author.ID, 10)
	book := createBook(t, api, `{"title":"Kindred","author_id":`+authorID+`,"isbn":"978-0-8070-8369-7"}`)

	rec := doRequest(api, http.MethodDelete, "/authors/"+authorID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	bookRec := doRequest(api, http.MethodGet, "/books/"+strconv.FormatInt(book.ID, 10), "")
	assert.Equal(t, http.StatusNotFound, bookRec.Code)
}

func Test_DeleteAuthor_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodDelete, "/authors/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_CreateBook_DefaultsCopiesAvailable(t *testing.T) {
	api := newTestAPI(t)

	author := createAuthor(t, api, "Ted Chiang")
	authorID := strconv.FormatInt(author.ID, 10)

	book := createBook(t, api, `{"title":"Exhalation","author_id":`+authorID+`,"isbn":"978-1-101-94788-3"}`)

	assert.Equal(t, "Exhalation", book.Title)
	assert.Equal(t, author.ID, book.AuthorID)
	assert.Equal(t, inventory.DefaultCopiesAvailable, book.CopiesAvailable)
}

func Test_CreateBook_WithCopiesAvailable(t *testing.T) {
	api := newTestAPI(t)

	author := createAuthor(t, api, "Ann Leckie")
	authorID := strconv.FormatInt(author.ID, 10)

	book := createBook(t, api, `{"title":"Ancillary Justice","author_id":`+authorID+`,"isbn":"978-0-316-24662-0","copies_available":5}`)

	assert.Equal(t, 5, book.CopiesAvailable)
}

func Test_CreateBook_UnknownAuthor(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodPost, "/books/", `{"title":"Orphaned","author_id":4711,"isbn":"978-0-00-000000-2"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errCodeInvalidAuthorID, resp.Error)
}

func Test_CreateBook_MissingTitle(t *testing.T) {
	api := newTestAPI(t)

	author := createAuthor(t, api, "Becky Chambers")
	authorID := strconv.FormatInt(author.ID, 10)

	rec := doRequest(api, http.MethodPost, "/books/", `{"author_id":`+authorID+`,"isbn":"978-0-06-269923-3"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_GetBook_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodGet, "/books/54321", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_UpdateBook_ReplacesAllFields(t *testing.T) {
	api := newTestAPI(t)

	author := createAuthor(t, api, "Liu Cixin")
	authorID := strconv.FormatInt(author.ID, 10)
	book := createBook(t, api, `{"title":"The Three-Body Problem","author_id":`+authorID+`,"isbn":"978-0-7653-7706-7"}`)

	body := `{"title":"The Dark Forest","author_id":` + authorID + `,"isbn":"978-0-7653-8669-4","copies_available":2}`
	rec := doRequest(api, http.MethodPut, "/books/"+strconv.FormatInt(book.ID, 10), body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var updated inventory.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, book.ID, updated.ID)
	assert.Equal(t, "The Dark Forest", updated.Title)
	assert.Equal(t, "978-0-7653-8669-4", updated.ISBN)
	assert.Equal(t, 2, updated.CopiesAvailable)
}

func Test_UpdateBook_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodPut, "/books/888", `{"title":"Nobody Home","author_id":1,"isbn":"978-0-00-000000-3"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_DeleteBook(t *testing.T) {
	api := newTestAPI(t)

	author := createAuthor(t, api, "N.K. Jemisin")
	authorID := strconv.FormatInt(author.ID, 10)
	book := createBook(t, api, `{"title":"The Fifth Season","author_id":`+authorID+`,"isbn":"978-0-316-22929-6"}`)
	bookID := strconv.FormatInt(book.ID, 10)

	rec := doRequest(api, http.MethodDelete, "/books/"+bookID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	getRec := doRequest(api, http.MethodGet, "/books/"+bookID, "")
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func Test_DeleteBook_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodDelete, "/books/777", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_Health(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func Test_Routes_WorkWithoutTrailingSlash(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodPost, "/authors", `{"name":"Jorge Luis Borges"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	listRec := doRequest(api, http.MethodGet, "/books", "")
	assert.Equal(t, http.StatusOK, listRec.Code)
}

func Test_RequestLog_SetsRequestIDHeader(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(api, http.MethodGet, "/health", "")

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
