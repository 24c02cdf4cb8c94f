package inventory

import (
	"strings"
)

// DefaultCopiesAvailable is the inventory count assigned to a book
// when the caller does not supply one.
const DefaultCopiesAvailable = 1

// Book is a catalog entry referencing one Author, with an inventory count.
type Book struct {
	ID              int64  `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	AuthorID        int64  `json:"author_id" db:"author_id"`
	ISBN            string `json:"isbn" db:"isbn"`
	CopiesAvailable int    `json:"copies_available" db:"copies_available"`
}

// Books is a list of Book records.
type Books []Book

// BookInput holds the validated caller-supplied fields for creating or
// replacing a Book. Build it with BuildBookInput, which enforces the field
// rules and applies the copies default.
type BookInput struct {
	Title           string
	AuthorID        int64
	ISBN            string
	CopiesAvailable int
}

// BuildBookInput validates the supplied fields and returns a BookInput.
// Title and isbn must not be empty, and authorID must be a positive id.
// A nil copiesAvailable selects DefaultCopiesAvailable.
func BuildBookInput(title string, authorID int64, isbn string, copiesAvailable *int) (BookInput, error) {
	if strings.TrimSpace(title) == "" {
		return BookInput{}, ErrEmptyBookTitle
	}

	if authorID <= 0 {
		return BookInput{}, ErrInvalidAuthorReference
	}

	if strings.TrimSpace(isbn) == "" {
		return BookInput{}, ErrEmptyBookISBN
	}

	copies := DefaultCopiesAvailable
	if copiesAvailable != nil {
		copies = *copiesAvailable
	}

	return BookInput{
		Title:           title,
		AuthorID:        authorID,
		ISBN:            isbn,
		CopiesAvailable: copies,
	}, nil
}
