package inventory

import (
	"strings"
)

// Author is a named entity owning zero or more Books.
// Deleting an Author removes all Books that reference it.
type Author struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Authors is a list of Author records.
type Authors []Author

// AuthorInput holds the validated caller-supplied fields for a new Author.
// Build it with BuildAuthorInput, which enforces the field rules.
type AuthorInput struct {
	Name string
}

// BuildAuthorInput validates the supplied fields and returns an AuthorInput.
// The name must not be empty or consist only of whitespace.
func BuildAuthorInput(name string) (AuthorInput, error) {
	if strings.TrimSpace(name) == "" {
		return AuthorInput{}, ErrEmptyAuthorName
	}

	return AuthorInput{Name: name}, nil
}
