package sqlengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/libshelf/library-inventory-go/inventory"
)

// CreateBook inserts a new book record and returns it with its assigned id.
//
// The insert is conditional on the referenced author existing, in a single
// statement (INSERT ... SELECT ... WHERE EXISTS), so the reference check and
// the insert cannot race with a concurrent author delete. Zero rows affected
// means the author reference did not resolve.
//
// The isbn is unique, so the created row is read back by isbn. An isbn
// collision surfaces as the underlying constraint violation.
func (s Store) CreateBook(ctx context.Context, input inventory.BookInput) (inventory.Book, error) {
	var empty inventory.Book

	sqlQuery, buildErr := s.buildInsertBookQuery(input)
	if buildErr != nil {
		return empty, buildErr
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery, logActionCreateBook)
	if execErr != nil {
		return empty, execErr
	}

	if rowsAffected == 0 {
		s.logOperation(logMsgInvalidAuthor, logAttrAuthorID, input.AuthorID)

		return empty, inventory.ErrInvalidAuthorReference
	}

	book, findErr := s.findSingleBook(ctx, goqu.Ex{colISBN: input.ISBN})
	if findErr != nil {
		return empty, findErr
	}

	s.logOperation(logMsgBookCreated, logAttrBookID, book.ID, logAttrAuthorID, book.AuthorID)

	return book, nil
}

// GetBook retrieves a single book by id.
// It returns inventory.ErrBookNotFound if the id does not resolve to a record.
func (s Store) GetBook(ctx context.Context, id int64) (inventory.Book, error) {
	return s.findSingleBook(ctx, goqu.Ex{colID: id})
}

// ListBooks retrieves all books ordered by id.
func (s Store) ListBooks(ctx context.Context) (inventory.Books, error) {
	books, err := s.findBooks(ctx, nil)
	if err != nil {
		return nil, err
	}

	s.logOperation(logMsgRecordsListed, logAttrTable, s.booksTableName, logAttrRecordCount, len(books))

	return books, nil
}

// UpdateBook replaces all fields of the book with the given id and returns the
// updated record. It returns inventory.ErrBookNotFound if the id does not
// resolve to a record.
//
// The author reference is not re-checked here, matching create-only reference
// validation; a dangling author_id is still rejected by the schema's foreign
// key and surfaces as the underlying constraint violation.
func (s Store) UpdateBook(ctx context.Context, id int64, input inventory.BookInput) (inventory.Book, error) {
	var empty inventory.Book

	updateStmt := s.builder().
		Update(s.booksTableName).
		Set(goqu.Record{
			colTitle:           input.Title,
			colAuthorID:        input.AuthorID,
			colISBN:            input.ISBN,
			colCopiesAvailable: input.CopiesAvailable,
		}).
		Where(goqu.Ex{colID: id})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return empty, s.logBuildQueryFailed(toSQLErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery, logActionUpdateBook)
	if execErr != nil {
		return empty, execErr
	}

	if rowsAffected == 0 {
		return empty, inventory.ErrBookNotFound
	}

	book, findErr := s.findSingleBook(ctx, goqu.Ex{colID: id})
	if findErr != nil {
		return empty, findErr
	}

	s.logOperation(logMsgBookUpdated, logAttrBookID, book.ID)

	return book, nil
}

// DeleteBook deletes a book by id.
// It returns inventory.ErrBookNotFound if the id does not resolve to a record.
func (s Store) DeleteBook(ctx context.Context, id int64) error {
	deleteStmt := s.builder().
		Delete(s.booksTableName).
		Where(goqu.Ex{colID: id})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return s.logBuildQueryFailed(toSQLErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery, logActionDeleteBook)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return inventory.ErrBookNotFound
	}

	s.logOperation(logMsgBookDeleted, logAttrBookID, id)

	return nil
}

// buildInsertBookQuery builds the conditional insert guarded by the author existence check.
func (s Store) buildInsertBookQuery(input inventory.BookInput) (sqlQueryString, error) {
	builder := s.builder()

	authorExists := builder.
		From(s.authorsTableName).
		Select(goqu.V(1)).
		Where(goqu.Ex{colID: input.AuthorID})

	selectStmt := builder.
		Select(goqu.V(input.Title), goqu.V(input.AuthorID), goqu.V(input.ISBN), goqu.V(input.CopiesAvailable)).
		Where(goqu.L("EXISTS ?", authorExists))

	insertStmt := builder.
		Insert(s.booksTableName).
		Cols(colTitle, colAuthorID, colISBN, colCopiesAvailable).
		FromQuery(selectStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", s.logBuildQueryFailed(toSQLErr)
	}

	return sqlQuery, nil
}

// findSingleBook queries for exactly one book matching the where expression.
func (s Store) findSingleBook(ctx context.Context, where goqu.Expression) (inventory.Book, error) {
	var empty inventory.Book

	books, findErr := s.findBooks(ctx, where)
	if findErr != nil {
		return empty, findErr
	}

	if len(books) == 0 {
		return empty, inventory.ErrBookNotFound
	}

	return books[0], nil
}

// findBooks queries book rows, optionally restricted by a where expression.
func (s Store) findBooks(ctx context.Context, where goqu.Expression) (inventory.Books, error) {
	selectStmt := s.builder().
		From(s.booksTableName).
		Select(colID, colTitle, colAuthorID, colISBN, colCopiesAvailable).
		Order(goqu.I(colID).Asc())

	if where != nil {
		selectStmt = selectStmt.Where(where)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, s.logBuildQueryFailed(toSQLErr)
	}

	rows, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	books := make(inventory.Books, 0)

	for rows.Next() {
		var book inventory.Book

		scanErr := rows.Scan(&book.ID, &book.Title, &book.AuthorID, &book.ISBN, &book.CopiesAvailable)
		if scanErr != nil {
			if s.logger != nil {
				s.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
			}

			return nil, errors.Join(inventory.ErrScanningDBRowFailed, scanErr)
		}

		books = append(books, book)
	}

	return books, nil
}
