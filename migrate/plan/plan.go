// Package plan turns a physical model or change set into an ordered list
// of DDL statement records. Deciding what to emit and in which order is
// separated from rendering dialect-specific text (migrate/sqlgen) so new
// target dialects never touch the ordering logic.
package plan

import (
	"github.com/umlforge/umlforge/migrate/diff"
	"github.com/umlforge/umlforge/schema"
)

// Kind identifies a DDL statement record.
type Kind string

const (
	CreateTable   Kind = "CreateTable"
	AddColumn     Kind = "AddColumn"
	AddForeignKey Kind = "AddForeignKey"
	CreateIndex   Kind = "CreateIndex"
	AlterColumn   Kind = "AlterColumn"
	DropColumn    Kind = "DropColumn"
	DropTable     Kind = "DropTable"
)

// Statement is one planned DDL operation. Exactly the fields relevant to
// its Kind are set. Disabled statements are rendered commented out for
// human review instead of being applied.
type Statement struct {
	Kind       Kind
	Table      string
	Create     *schema.Table      // CreateTable: full definition; render only base columns
	Column     *schema.Column     // AddColumn, AlterColumn (desired definition)
	ColumnName string             // DropColumn
	ForeignKey *schema.ForeignKey // AddForeignKey
	Index      *schema.Index      // CreateIndex
	// AutoIncrement marks a CreateTable whose single primary key column is
	// backed by a registered sequence; renderers emit the dialect's
	// auto-increment form.
	AutoIncrement bool
	Disabled      bool
}

// IsBaseColumn reports whether a column belongs in the initial CREATE
// TABLE statement. Foreign key columns are added in a later pass so that
// tables can reference each other in any order, including cycles; primary
// key columns always stay in the CREATE even when they double as foreign
// keys (junction tables).
func IsBaseColumn(col *schema.Column) bool {
	return col.ForeignKey == nil || col.PrimaryKey
}

// Bootstrap plans the full initial schema in four passes: create all
// tables with base columns and primary keys, add foreign key columns via
// ALTER, add foreign key constraints, then indexes. The four-pass order
// makes inter-table dependencies, including circular references,
// irrelevant to statement ordering.
func Bootstrap(m *schema.PhysicalModel) []Statement {
	return planTables(m, m.TableNames())
}

// Incremental plans a migration for a change set against the current
// model: new tables first (the same four passes, scoped to the new
// tables), then column additions and foreign key constraints for modified
// tables, then commented-out column drops, and table drops last. Column
// deletions are never auto-applied; the cost of silent data loss
// outweighs full automation.
func Incremental(changes *diff.ChangeSet, current *schema.PhysicalModel) []Statement {
	var stmts []Statement

	stmts = append(stmts, planTables(current, changes.NewTables)...)

	for _, tc := range changes.ModifiedTables {
		for i := range tc.NewColumns {
			col := tc.NewColumns[i]
			stmts = append(stmts, Statement{Kind: AddColumn, Table: tc.Table, Column: &col})
		}
	}
	for _, tc := range changes.ModifiedTables {
		for i := range tc.NewForeignKeys {
			fk := tc.NewForeignKeys[i]
			stmts = append(stmts, Statement{Kind: AddForeignKey, Table: tc.Table, ForeignKey: &fk})
		}
	}
	for _, tc := range changes.ModifiedTables {
		for i := range tc.ModifiedColumns {
			col := tc.ModifiedColumns[i].Current
			stmts = append(stmts, Statement{Kind: AlterColumn, Table: tc.Table, Column: &col})
		}
	}
	for _, tc := range changes.ModifiedTables {
		for _, name := range tc.DeletedColumns {
			stmts = append(stmts, Statement{Kind: DropColumn, Table: tc.Table, ColumnName: name, Disabled: true})
		}
	}

	for _, name := range changes.DeletedTables {
		stmts = append(stmts, Statement{Kind: DropTable, Table: name})
	}

	return stmts
}

// autoIncrement reports whether a table's key should use the dialect's
// auto-increment form: a registered sequence backing a single integer
// primary key. Non-integer keys (uuid, text) keep their declared type,
// so foreign key columns referencing them stay type-compatible.
func autoIncrement(t *schema.Table, sequenced bool) bool {
	if !sequenced || len(t.PrimaryKeyColumns) != 1 {
		return false
	}
	pk := t.Column(t.PrimaryKeyColumns[0])
	if pk == nil {
		return false
	}
	return pk.Type == schema.TypeInteger || pk.Type == schema.TypeBigInt
}

// planTables emits the four passes for the named tables of a model.
// Unknown names are skipped; the differ only reports names present in the
// current model.
func planTables(m *schema.PhysicalModel, names []string) []Statement {
	sequenced := make(map[string]bool, len(m.Sequences))
	for _, seq := range m.Sequences {
		sequenced[seq.Table] = true
	}

	var tables []*schema.Table
	for _, name := range names {
		if t := m.Table(name); t != nil {
			tables = append(tables, t)
		}
	}

	var stmts []Statement
	for _, t := range tables {
		stmts = append(stmts, Statement{
			Kind:          CreateTable,
			Table:         t.Name,
			Create:        t,
			AutoIncrement: autoIncrement(t, sequenced[t.Name]),
		})
	}
	for _, t := range tables {
		for i := range t.Columns {
			col := &t.Columns[i]
			if !IsBaseColumn(col) {
				stmts = append(stmts, Statement{Kind: AddColumn, Table: t.Name, Column: col})
			}
		}
	}
	for _, t := range tables {
		for i := range t.ForeignKeys {
			stmts = append(stmts, Statement{Kind: AddForeignKey, Table: t.Name, ForeignKey: &t.ForeignKeys[i]})
		}
	}
	for _, t := range tables {
		for i := range t.Indexes {
			stmts = append(stmts, Statement{Kind: CreateIndex, Table: t.Name, Index: &t.Indexes[i]})
		}
	}
	return stmts
}
