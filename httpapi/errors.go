// Error mapping for the inventory API.
// Storage errors are translated to statuses here; anything unknown is logged
// in full server-side and reported with a generic message.

package httpapi

import (
	"errors"
	"net/http"

	"github.com/libshelf/library-inventory-go/inventory"
)

// Error codes used in ErrorResponse bodies.
const (
	errCodeInvalidJSON     = "invalid_json"
	errCodeInvalidID       = "invalid_id"
	errCodeInvalidInput    = "invalid_input"
	errCodeInvalidAuthorID = "invalid_author_id"
	errCodeNotFound        = "not_found"
	errCodeStoreError      = "store_error"
)

// errMsgInternal is returned for unexpected storage failures, including
// uniqueness violations, which are deliberately not translated.
const errMsgInternal = "an internal storage error occurred"

// storeError maps a storage error to an HTTP response.
func (a *API) storeError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, inventory.ErrAuthorNotFound):
		writeError(w, http.StatusNotFound, errCodeNotFound, "author not found")

	case errors.Is(err, inventory.ErrBookNotFound):
		writeError(w, http.StatusNotFound, errCodeNotFound, "book not found")

	case errors.Is(err, inventory.ErrInvalidAuthorReference):
		writeError(w, http.StatusBadRequest, errCodeInvalidAuthorID, inventory.ErrInvalidAuthorReference.Error())

	default:
		a.log.Error("store operation failed", "operation", operation, "error", err)
		writeError(w, http.StatusInternalServerError, errCodeStoreError, errMsgInternal)
	}
}
