// Package transform implements the logical-to-physical transformation
// engine: attribute and multiplicity parsing and the class-diagram to
// relational-schema mapping passes.
package transform

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/umlforge/umlforge/schema"
)

// attrLexer tokenizes a single attribute declaration of the form
// `name: type {constraint, constraint}` with an optional UML visibility
// prefix.
var attrLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Visibility", Pattern: `[+#~-]`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// attrDecl is the raw parse tree for an attribute declaration.
type attrDecl struct {
	Visibility  string   `parser:"@Visibility?"`
	Name        string   `parser:"@Ident"`
	Type        string   `parser:"':' @Ident"`
	Constraints []string `parser:"('{' @Ident (',' @Ident)* '}')?"`
}

var attrParser = participle.MustBuild[attrDecl](
	participle.Lexer(attrLexer),
	participle.Elide("Whitespace"),
)

// ParsedAttribute is the result of parsing one attribute declaration.
type ParsedAttribute struct {
	Column       schema.Column
	IsPrimaryKey bool
	Warnings     []string
}

// typeMapping maps UML/editor type names (lowercased) to logical column
// types.
var typeMapping = map[string]schema.DataType{
	"int":       schema.TypeInteger,
	"integer":   schema.TypeInteger,
	"short":     schema.TypeInteger,
	"long":      schema.TypeBigInt,
	"bigint":    schema.TypeBigInt,
	"string":    schema.TypeText,
	"text":      schema.TypeText,
	"char":      schema.TypeVarchar,
	"varchar":   schema.TypeVarchar,
	"float":     schema.TypeFloat,
	"double":    schema.TypeFloat,
	"decimal":   schema.TypeDecimal,
	"number":    schema.TypeDecimal,
	"date":      schema.TypeDate,
	"datetime":  schema.TypeTimestamp,
	"timestamp": schema.TypeTimestamp,
	"bool":      schema.TypeBoolean,
	"boolean":   schema.TypeBoolean,
	"blob":      schema.TypeBinary,
	"binary":    schema.TypeBinary,
	"bytes":     schema.TypeBinary,
	"uuid":      schema.TypeIdentifier,
	"guid":      schema.TypeIdentifier,
}

// ParseAttribute parses one raw attribute declaration into a column.
// Parsing is best-effort: malformed input yields a fallback text column
// named attr_<index> plus a warning instead of an error, and unrecognized
// constraint keywords warn without failing.
func ParseAttribute(raw string, index int) ParsedAttribute {
	trimmed := strings.TrimSpace(raw)

	decl, err := attrParser.ParseString("", trimmed)
	if err != nil {
		return ParsedAttribute{
			Column: schema.Column{
				Name:     fmt.Sprintf("attr_%d", index),
				Type:     schema.TypeText,
				Nullable: true,
			},
			Warnings: []string{fmt.Sprintf("malformed attribute %q: expected 'name: type {constraints}'", raw)},
		}
	}

	parsed := ParsedAttribute{
		Column: schema.Column{
			Name:     ToSnakeCase(decl.Name),
			Nullable: true,
		},
	}

	dataType, ok := typeMapping[strings.ToLower(decl.Type)]
	if !ok {
		dataType = schema.TypeText
		parsed.Warnings = append(parsed.Warnings,
			fmt.Sprintf("unknown type %q for attribute %q, falling back to text", decl.Type, decl.Name))
	}
	parsed.Column.Type = dataType

	for _, constraint := range decl.Constraints {
		switch strings.ToLower(constraint) {
		case "id":
			parsed.IsPrimaryKey = true
			parsed.Column.PrimaryKey = true
			parsed.Column.Nullable = false
		case "unique":
			parsed.Column.Unique = true
		case "required":
			parsed.Column.Nullable = false
		default:
			parsed.Warnings = append(parsed.Warnings,
				fmt.Sprintf("unknown constraint %q on attribute %q", constraint, decl.Name))
		}
	}

	return parsed
}

// ToSnakeCase converts a CamelCase or mixedCase identifier to snake_case.
func ToSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
