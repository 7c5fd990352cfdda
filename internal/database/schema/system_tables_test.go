package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableDefinitions(t *testing.T) {
	assert.Len(t, TableDefinitions, len(TableNames))

	for i, name := range TableNames {
		assert.Contains(t, TableDefinitions[i], "CREATE TABLE IF NOT EXISTS "+name+" ")
		assert.NotContains(t, strings.ToUpper(TableDefinitions[i]), "REFERENCES")
	}
}

func TestIndexDefinitions(t *testing.T) {
	for _, stmt := range IndexDefinitions {
		assert.True(t, strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS"), stmt)
	}
}
