package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildAuthorInput(t *testing.T) {
	tests := []struct {
		name        string
		authorName  string
		expectedErr error
	}{
		{
			name:       "valid name",
			authorName: "Ursula K. Le Guin",
		},
		{
			name:        "empty name",
			authorName:  "",
			expectedErr: ErrEmptyAuthorName,
		},
		{
			name:        "whitespace only name",
			authorName:  "   ",
			expectedErr: ErrEmptyAuthorName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := BuildAuthorInput(tt.authorName)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.authorName, input.Name)
		})
	}
}

func Test_BuildBookInput_ErrorCases(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		authorID    int64
		isbn        string
		expectedErr error
	}{
		{
			name:        "empty title",
			title:       "",
			authorID:    1,
			isbn:        "978-0-441-47812-5",
			expectedErr: ErrEmptyBookTitle,
		},
		{
			name:        "whitespace only title",
			title:       "  ",
			authorID:    1,
			isbn:        "978-0-441-47812-5",
			expectedErr: ErrEmptyBookTitle,
		},
		{
			name:        "zero author id",
			title:       "The Left Hand of Darkness",
			authorID:    0,
			isbn:        "978-0-441-47812-5",
			expectedErr: ErrInvalidAuthorReference,
		},
		{
			name:        "negative author id",
			title:       "The Left Hand of Darkness",
			authorID:    -3,
			isbn:        "978-0-441-47812-5",
			expectedErr: ErrInvalidAuthorReference,
		},
		{
			name:        "empty isbn",
			title:       "The Left Hand of Darkness",
			authorID:    1,
			isbn:        "",
			expectedErr: ErrEmptyBookISBN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildBookInput(tt.title, tt.authorID, tt.isbn, nil)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_BuildBookInput_CopiesDefault(t *testing.T) {
	input, err := BuildBookInput("The Dispossessed", 1, "978-0-06-051275-1", nil)

	assert.NoError(t, err)
	assert.Equal(t, DefaultCopiesAvailable, input.CopiesAvailable)
}

func Test_BuildBookInput_CopiesSupplied(t *testing.T) {
	copies := 7
	input, err := BuildBookInput("The Dispossessed", 1, "978-0-06-051275-1", &copies)

	assert.NoError(t, err)
	assert.Equal(t, 7, input.CopiesAvailable)
}
