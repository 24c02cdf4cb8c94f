package sqlengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/libshelf/library-inventory-go/inventory"
)

// CreateAuthor inserts a new author record and returns it with its assigned id.
// The author name is unique, so the created row is read back by name.
// A name collision surfaces as the underlying constraint violation.
func (s Store) CreateAuthor(ctx context.Context, input inventory.AuthorInput) (inventory.Author, error) {
	var empty inventory.Author

	insertStmt := s.builder().
		Insert(s.authorsTableName).
		Cols(colName).
		Vals(goqu.Vals{input.Name})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return empty, s.logBuildQueryFailed(toSQLErr)
	}

	if _, execErr := s.executeStatement(ctx, sqlQuery, logActionCreateAuthor); execErr != nil {
		return empty, execErr
	}

	author, findErr := s.findSingleAuthor(ctx, goqu.Ex{colName: input.Name})
	if findErr != nil {
		return empty, findErr
	}

	s.logOperation(logMsgAuthorCreated, logAttrAuthorID, author.ID)

	return author, nil
}

// GetAuthor retrieves a single author by id.
// It returns inventory.ErrAuthorNotFound if the id does not resolve to a record.
func (s Store) GetAuthor(ctx context.Context, id int64) (inventory.Author, error) {
	return s.findSingleAuthor(ctx, goqu.Ex{colID: id})
}

// ListAuthors retrieves all authors ordered by id.
func (s Store) ListAuthors(ctx context.Context) (inventory.Authors, error) {
	authors, err := s.findAuthors(ctx, nil)
	if err != nil {
		return nil, err
	}

	s.logOperation(logMsgRecordsListed, logAttrTable, s.authorsTableName, logAttrRecordCount, len(authors))

	return authors, nil
}

// DeleteAuthor deletes an author by id. Books referencing the author are
// removed by the schema's cascading foreign key.
// It returns inventory.ErrAuthorNotFound if the id does not resolve to a record.
func (s Store) DeleteAuthor(ctx context.Context, id int64) error {
	deleteStmt := s.builder().
		Delete(s.authorsTableName).
		Where(goqu.Ex{colID: id})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return s.logBuildQueryFailed(toSQLErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery, logActionDeleteAuthor)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return inventory.ErrAuthorNotFound
	}

	s.logOperation(logMsgAuthorDeleted, logAttrAuthorID, id)

	return nil
}

// findSingleAuthor queries for exactly one author matching the where expression.
func (s Store) findSingleAuthor(ctx context.Context, where goqu.Expression) (inventory.Author, error) {
	var empty inventory.Author

	authors, findErr := s.findAuthors(ctx, where)
	if findErr != nil {
		return empty, findErr
	}

	if len(authors) == 0 {
		return empty, inventory.ErrAuthorNotFound
	}

	return authors[0], nil
}

// findAuthors queries author rows, optionally restricted by a where expression.
func (s Store) findAuthors(ctx context.Context, where goqu.Expression) (inventory.Authors, error) {
	selectStmt := s.builder().
		From(s.authorsTableName).
		Select(colID, colName).
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

	authors := make(inventory.Authors, 0)

	for rows.Next() {
		var author inventory.Author

		if scanErr := rows.Scan(&author.ID, &author.Name); scanErr != nil {
			if s.logger != nil {
				s.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
			}

			return nil, errors.Join(inventory.ErrScanningDBRowFailed, scanErr)
		}

		authors = append(authors, author)
	}

	return authors, nil
}
