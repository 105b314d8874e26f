// Package diff implements structural comparison of two physical models.
package diff

import (
	"sort"

	"github.com/umlforge/umlforge/schema"
)

// ColumnChange describes one column whose definition drifted between two
// versions of a table. Columns are matched by name only, so a rename
// surfaces as a deleted column plus a new column.
type ColumnChange struct {
	Name     string        `json:"name"`
	Previous schema.Column `json:"previous"`
	Current  schema.Column `json:"current"`
}

// TableChange describes the column-level changes of a table present in
// both models.
type TableChange struct {
	Table           string              `json:"table"`
	NewColumns      []schema.Column     `json:"newColumns,omitempty"`
	DeletedColumns  []string            `json:"deletedColumns,omitempty"`
	ModifiedColumns []ColumnChange      `json:"modifiedColumns,omitempty"`
	NewForeignKeys  []schema.ForeignKey `json:"newForeignKeys,omitempty"`
}

// HasChanges reports whether the table change carries any actual change.
func (c *TableChange) HasChanges() bool {
	return len(c.NewColumns) > 0 || len(c.DeletedColumns) > 0 || len(c.ModifiedColumns) > 0
}

// ChangeSet is the structured difference between two physical models.
type ChangeSet struct {
	NewTables      []string      `json:"newTables"`
	DeletedTables  []string      `json:"deletedTables"`
	ModifiedTables []TableChange `json:"modifiedTables"`
	HasChanges     bool          `json:"hasChanges"`
}

// Compare computes the change set between a previous and a current
// physical model. The comparison is purely structural: neither input is
// mutated and the result does not alias either model's slices.
func Compare(previous, current *schema.PhysicalModel) *ChangeSet {
	cs := &ChangeSet{}

	prevTables := tablesByName(previous)
	currTables := tablesByName(current)

	for _, name := range sortedNames(currTables) {
		if _, exists := prevTables[name]; !exists {
			cs.NewTables = append(cs.NewTables, name)
		}
	}
	for _, name := range sortedNames(prevTables) {
		if _, exists := currTables[name]; !exists {
			cs.DeletedTables = append(cs.DeletedTables, name)
		}
	}
	for _, name := range sortedNames(prevTables) {
		currTable, exists := currTables[name]
		if !exists {
			continue
		}
		change := compareTable(prevTables[name], currTable)
		if change.HasChanges() {
			cs.ModifiedTables = append(cs.ModifiedTables, change)
		}
	}

	cs.HasChanges = len(cs.NewTables) > 0 || len(cs.DeletedTables) > 0 || len(cs.ModifiedTables) > 0
	return cs
}

// compareTable computes per-column changes for a table present in both
// models. A column counts as modified when its data type, nullability or
// primary-key flag differs.
func compareTable(previous, current *schema.Table) TableChange {
	change := TableChange{Table: current.Name}

	prevCols := make(map[string]schema.Column, len(previous.Columns))
	for _, col := range previous.Columns {
		prevCols[col.Name] = col
	}
	currCols := make(map[string]schema.Column, len(current.Columns))
	for _, col := range current.Columns {
		currCols[col.Name] = col
	}

	for _, col := range current.Columns {
		prev, exists := prevCols[col.Name]
		if !exists {
			change.NewColumns = append(change.NewColumns, col)
			if col.ForeignKey != nil {
				change.NewForeignKeys = append(change.NewForeignKeys, *col.ForeignKey)
			}
			continue
		}
		if prev.Type != col.Type || prev.Nullable != col.Nullable || prev.PrimaryKey != col.PrimaryKey {
			change.ModifiedColumns = append(change.ModifiedColumns, ColumnChange{
				Name:     col.Name,
				Previous: prev,
				Current:  col,
			})
		}
	}
	for _, col := range previous.Columns {
		if _, exists := currCols[col.Name]; !exists {
			change.DeletedColumns = append(change.DeletedColumns, col.Name)
		}
	}
	sort.Strings(change.DeletedColumns)

	return change
}

func tablesByName(m *schema.PhysicalModel) map[string]*schema.Table {
	tables := make(map[string]*schema.Table, len(m.Tables))
	for i := range m.Tables {
		tables[m.Tables[i].Name] = &m.Tables[i]
	}
	return tables
}

func sortedNames(tables map[string]*schema.Table) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
