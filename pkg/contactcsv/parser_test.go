package contactcsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("basic file", func(t *testing.T) {
		input := "name,email\nAda Lovelace,Ada@Example.com\n\nBob,bob@example.org\n"

		result, err := Parse(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []Row{
			{Name: "Ada Lovelace", Email: "ada@example.com"},
			{Name: "Bob", Email: "bob@example.org"},
		}, result.Contacts)
		assert.Equal(t, Stats{Rows: 2, Accepted: 2}, result.Stats)
	})

	t.Run("header is case-insensitive and column order is free", func(t *testing.T) {
		input := " Email , Company, NAME\nx@y.io,Acme,X\n"

		result, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []Row{{Name: "X", Email: "x@y.io"}}, result.Contacts)
	})

	t.Run("name column is optional", func(t *testing.T) {
		result, err := Parse(strings.NewReader("email\nsolo@example.com\n"))
		require.NoError(t, err)
		assert.Equal(t, "", result.Contacts[0].Name)
	})

	t.Run("invalid rows and duplicates are skipped", func(t *testing.T) {
		input := "name,email\nA,a@example.com\nB,not-an-email\nC,\nA2,A@example.com\nD,d@example.com,extra\nshort\n"

		result, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []Row{
			{Name: "A", Email: "a@example.com"},
			{Name: "D", Email: "d@example.com"},
		}, result.Contacts)
		assert.Equal(t, Stats{Rows: 6, Accepted: 2, Invalid: 3, Duplicates: 1}, result.Stats)
	})

	t.Run("quoted fields with commas", func(t *testing.T) {
		input := "name,email\n\"Lovelace, Ada\",ada@example.com\n"

		result, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "Lovelace, Ada", result.Contacts[0].Name)
	})

	t.Run("byte order mark", func(t *testing.T) {
		input := "\xEF\xBB\xBFemail,name\nbom@example.com,Bom\n"

		result, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "bom@example.com", result.Contacts[0].Email)
	})

	t.Run("windows line endings", func(t *testing.T) {
		result, err := Parse(strings.NewReader("name,email\r\nW,w@example.com\r\n"))
		require.NoError(t, err)
		assert.Equal(t, []Row{{Name: "W", Email: "w@example.com"}}, result.Contacts)
	})

	t.Run("errors", func(t *testing.T) {
		for _, input := range []string{
			"",
			"ab",
			"name,phone\nA,123\n",
			"name,email\nA,nope\n",
			"name,email\n",
		} {
			_, err := Parse(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrNoValidContacts, "input %q", input)
		}
	})
}

func TestBatches(t *testing.T) {
	rows := make([]Row, 250)

	batches := Batches(rows, 100)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)

	assert.Len(t, Batches(rows[:100], 100), 1)
	assert.Empty(t, Batches(nil, 100))
	assert.Len(t, Batches(rows[:7], 0), 1)
}
