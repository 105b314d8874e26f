package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umlforge/umlforge/schema"
)

func TestParseAttributeBasic(t *testing.T) {
	parsed := ParseAttribute("name: String", 0)

	require.Empty(t, parsed.Warnings)
	assert.Equal(t, "name", parsed.Column.Name)
	assert.Equal(t, schema.TypeText, parsed.Column.Type)
	assert.True(t, parsed.Column.Nullable)
	assert.False(t, parsed.IsPrimaryKey)
}

func TestParseAttributeIDConstraint(t *testing.T) {
	parsed := ParseAttribute("id: Long {id}", 0)

	require.Empty(t, parsed.Warnings)
	assert.True(t, parsed.IsPrimaryKey)
	assert.True(t, parsed.Column.PrimaryKey)
	assert.False(t, parsed.Column.Nullable)
	assert.Equal(t, schema.TypeBigInt, parsed.Column.Type)
}

func TestParseAttributeConstraintsCaseInsensitive(t *testing.T) {
	parsed := ParseAttribute("email: String {UNIQUE, Required}", 0)

	require.Empty(t, parsed.Warnings)
	assert.True(t, parsed.Column.Unique)
	assert.False(t, parsed.Column.Nullable)
}

func TestParseAttributeVisibilityPrefix(t *testing.T) {
	for _, prefix := range []string{"+", "-", "#", "~"} {
		parsed := ParseAttribute(prefix+" balance: Decimal {required}", 0)
		require.Empty(t, parsed.Warnings, "prefix %s", prefix)
		assert.Equal(t, "balance", parsed.Column.Name)
		assert.Equal(t, schema.TypeDecimal, parsed.Column.Type)
	}
}

func TestParseAttributeUnknownConstraintWarns(t *testing.T) {
	parsed := ParseAttribute("age: Int {positive}", 0)

	require.Len(t, parsed.Warnings, 1)
	assert.Contains(t, parsed.Warnings[0], "positive")
	assert.Equal(t, schema.TypeInteger, parsed.Column.Type)
}

func TestParseAttributeMalformedFallback(t *testing.T) {
	parsed := ParseAttribute("this is not an attribute", 3)

	require.Len(t, parsed.Warnings, 1)
	assert.Contains(t, parsed.Warnings[0], "malformed attribute")
	assert.Equal(t, "attr_3", parsed.Column.Name)
	assert.Equal(t, schema.TypeText, parsed.Column.Type)
	assert.True(t, parsed.Column.Nullable)
	assert.False(t, parsed.IsPrimaryKey)
}

func TestParseAttributeUnknownTypeFallsBackToText(t *testing.T) {
	parsed := ParseAttribute("payload: CustomThing", 0)

	require.Len(t, parsed.Warnings, 1)
	assert.Contains(t, parsed.Warnings[0], "unknown type")
	assert.Equal(t, schema.TypeText, parsed.Column.Type)
}

func TestParseAttributeSnakeCasesName(t *testing.T) {
	parsed := ParseAttribute("firstName: String", 0)
	assert.Equal(t, "first_name", parsed.Column.Name)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "customer", ToSnakeCase("Customer"))
	assert.Equal(t, "order_item", ToSnakeCase("OrderItem"))
	assert.Equal(t, "already_snake", ToSnakeCase("already_snake"))
}
