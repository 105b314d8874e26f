package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextVersionIsMaxBased(t *testing.T) {
	assert.Equal(t, 4, NextVersion([]string{"V1__x.sql", "V3__y.sql"}))
}

func TestNextVersionEmptyHistory(t *testing.T) {
	assert.Equal(t, 1, NextVersion(nil))
}

func TestNextVersionIgnoresForeignFiles(t *testing.T) {
	assert.Equal(t, 3, NextVersion([]string{
		"V2__init.sql",
		"README.md",
		"notes.sql",
		"V_bad__x.sql",
	}))
}

func TestParseVersion(t *testing.T) {
	v, ok := ParseVersion("V12__add_2_tables.sql")
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	_, ok = ParseVersion("12__add_2_tables.sql")
	assert.False(t, ok)

	_, ok = ParseVersion("V12_add_2_tables.sql")
	assert.False(t, ok)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "V1__initial_schema.sql", FileName(1, "initial schema"))
	assert.Equal(t, "V7__add_2_tables.sql", FileName(7, "add 2 tables"))
}

func TestSanitizeDescription(t *testing.T) {
	assert.Equal(t, "add_order_table", SanitizeDescription("Add Order  Table!"))
	assert.Equal(t, "drop_legacy", SanitizeDescription("--drop//legacy--"))
	assert.Equal(t, "migration", SanitizeDescription("***"))
}
