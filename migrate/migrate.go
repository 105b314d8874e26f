// Package migrate generates versioned, ordered DDL migration scripts
// from physical models and change sets.
package migrate

import (
	"fmt"
	"strings"
	"time"

	"github.com/umlforge/umlforge/migrate/diff"
	"github.com/umlforge/umlforge/migrate/history"
	"github.com/umlforge/umlforge/migrate/plan"
	"github.com/umlforge/umlforge/migrate/sqlgen"
	"github.com/umlforge/umlforge/schema"
)

// Migration is one versioned, immutable DDL script. Once emitted it is
// never rewritten; later migrations only extend the sequence.
type Migration struct {
	Version     int       `json:"version"`
	FileName    string    `json:"fileName"`
	Description string    `json:"description"`
	SQL         string    `json:"sql"`
	Timestamp   time.Time `json:"timestamp"`
}

// Generator produces migrations for one SQL dialect. Generators hold no
// internal state: version numbering derives entirely from the existing
// filenames supplied per call.
type Generator struct {
	renderer sqlgen.Renderer
}

// NewGenerator creates a generator for the given dialect.
func NewGenerator(dialect string) (*Generator, error) {
	renderer, err := sqlgen.ForDialect(dialect)
	if err != nil {
		return nil, err
	}
	return &Generator{renderer: renderer}, nil
}

// Generate produces the next migration for the current model. With no
// previous model the result is always the V1 bootstrap migration,
// regardless of existing filenames: callers are responsible for supplying
// the previous state when they want an incremental migration. With a
// previous model the change set drives an incremental migration, and a
// change set without changes yields a nil migration (not an error).
func (g *Generator) Generate(current, previous *schema.PhysicalModel, existing []string) (*Migration, error) {
	if current == nil {
		return nil, fmt.Errorf("current physical model is required")
	}

	if previous == nil {
		return g.bootstrap(current), nil
	}

	changes := diff.Compare(previous, current)
	if !changes.HasChanges {
		return nil, nil
	}

	version := history.NextVersion(existing)
	description := describeChanges(changes)
	stmts := plan.Incremental(changes, current)

	return &Migration{
		Version:     version,
		FileName:    history.FileName(version, description),
		Description: description,
		SQL:         g.render(version, description, stmts),
		Timestamp:   time.Now().UTC(),
	}, nil
}

func (g *Generator) bootstrap(current *schema.PhysicalModel) *Migration {
	const description = "initial_schema"
	stmts := plan.Bootstrap(current)
	return &Migration{
		Version:     1,
		FileName:    history.FileName(1, description),
		Description: description,
		SQL:         g.render(1, description, stmts),
		Timestamp:   time.Now().UTC(),
	}
}

func (g *Generator) render(version int, description string, stmts []plan.Statement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration V%d: %s\n", version, description)
	fmt.Fprintf(&b, "-- Dialect: %s\n\n", g.renderer.Dialect())
	b.WriteString(g.renderer.Render(stmts))
	return b.String()
}

// describeChanges derives a short migration description from the change
// set table counts.
func describeChanges(changes *diff.ChangeSet) string {
	var parts []string
	if n := len(changes.NewTables); n > 0 {
		parts = append(parts, fmt.Sprintf("add_%d_%s", n, plural(n, "table")))
	}
	if n := len(changes.ModifiedTables); n > 0 {
		parts = append(parts, fmt.Sprintf("alter_%d_%s", n, plural(n, "table")))
	}
	if n := len(changes.DeletedTables); n > 0 {
		parts = append(parts, fmt.Sprintf("drop_%d_%s", n, plural(n, "table")))
	}
	if len(parts) == 0 {
		return "schema_change"
	}
	return strings.Join(parts, "_")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
