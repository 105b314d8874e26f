// Package sqlgen renders planned DDL statements into dialect-specific
// migration SQL.
package sqlgen

import (
	"fmt"

	"github.com/umlforge/umlforge/migrate/plan"
)

// Renderer renders an ordered statement plan to SQL text for one dialect.
type Renderer interface {
	Dialect() string
	Render(stmts []plan.Statement) string
}

// ForDialect returns the renderer for the given dialect name.
func ForDialect(dialect string) (Renderer, error) {
	switch dialect {
	case "postgres", "postgresql", "":
		return NewPostgresRenderer(), nil
	case "mysql":
		return NewMySQLRenderer(), nil
	case "sqlite":
		return NewSQLiteRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}
