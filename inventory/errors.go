package inventory

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrUnsupportedDialect = errors.New("unsupported sql dialect supplied")
var ErrEmptyTableName = errors.New("empty table name supplied")

var ErrAuthorNotFound = errors.New("author not found")
var ErrBookNotFound = errors.New("book not found")
var ErrInvalidAuthorReference = errors.New("author_id does not reference an existing author")

var ErrEmptyAuthorName = errors.New("author name must not be empty")
var ErrEmptyBookTitle = errors.New("book title must not be empty")
var ErrEmptyBookISBN = errors.New("book isbn must not be empty")

var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrQueryingStoreFailed = errors.New("querying inventory store failed")
var ErrExecutingStatementFailed = errors.New("executing sql statement failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")
var ErrCreatingSchemaFailed = errors.New("creating inventory schema failed")
