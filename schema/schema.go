// Package schema defines the physical relational model produced by the
// transformation engine: tables, columns, keys, indexes and sequences.
package schema

import "fmt"

// DataType is the logical column type. Dialect renderers map these to
// concrete SQL types.
type DataType string

const (
	TypeInteger    DataType = "integer"
	TypeBigInt     DataType = "bigint"
	TypeText       DataType = "text"
	TypeVarchar    DataType = "varchar"
	TypeDecimal    DataType = "decimal"
	TypeFloat      DataType = "float"
	TypeDate       DataType = "date"
	TypeTimestamp  DataType = "timestamp"
	TypeBoolean    DataType = "boolean"
	TypeBinary     DataType = "binary"
	TypeIdentifier DataType = "identifier"
)

// ReferentialAction is the ON DELETE behavior of a foreign key.
type ReferentialAction string

const (
	NoAction ReferentialAction = ""
	Cascade  ReferentialAction = "CASCADE"
)

// ForeignKey represents a foreign key constraint.
type ForeignKey struct {
	Name              string            `json:"name"`
	Columns           []string          `json:"columns"`
	ReferencedTable   string            `json:"referencedTable"`
	ReferencedColumns []string          `json:"referencedColumns"`
	OnDelete          ReferentialAction `json:"onDelete,omitempty"`
}

// Column represents a table column.
type Column struct {
	Name       string      `json:"name"`
	Type       DataType    `json:"type"`
	Nullable   bool        `json:"nullable"`
	PrimaryKey bool        `json:"primaryKey"`
	Unique     bool        `json:"unique"`
	DefaultNow bool        `json:"defaultNow,omitempty"`
	ForeignKey *ForeignKey `json:"foreignKey,omitempty"`
}

// Index represents an index over one or more columns.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

// UniqueConstraint represents a table-level unique constraint.
type UniqueConstraint struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Table represents a database table.
type Table struct {
	Name              string             `json:"name"`
	Columns           []Column           `json:"columns"`
	PrimaryKeyColumns []string           `json:"primaryKeyColumns"`
	ForeignKeys       []ForeignKey       `json:"foreignKeys,omitempty"`
	Indexes           []Index            `json:"indexes,omitempty"`
	UniqueConstraints []UniqueConstraint `json:"uniqueConstraints,omitempty"`
}

// Sequence records that a table needs a surrogate key generator. DDL emits
// the dialect-appropriate auto-increment form instead of a literal
// CREATE SEQUENCE.
type Sequence struct {
	Name  string `json:"name"`
	Table string `json:"table"`
}

// PhysicalModel is the derived relational schema, the durable artifact of
// a transformation run.
type PhysicalModel struct {
	Tables    []Table    `json:"tables"`
	Sequences []Sequence `json:"sequences,omitempty"`
}

// Table returns the table with the given name, or nil.
func (m *PhysicalModel) Table(name string) *Table {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i]
		}
	}
	return nil
}

// TableNames returns the table names in declaration order.
func (m *PhysicalModel) TableNames() []string {
	names := make([]string, 0, len(m.Tables))
	for i := range m.Tables {
		names = append(names, m.Tables[i].Name)
	}
	return names
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// PrimaryKeyColumn returns the first primary key column, or nil for a
// table with no primary key.
func (t *Table) PrimaryKeyColumn() *Column {
	if len(t.PrimaryKeyColumns) == 0 {
		return nil
	}
	return t.Column(t.PrimaryKeyColumns[0])
}

// HasIndexOn reports whether any index covers exactly the given column.
func (t *Table) HasIndexOn(column string) bool {
	for _, idx := range t.Indexes {
		if len(idx.Columns) == 1 && idx.Columns[0] == column {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the model: every table has
// at least one primary key column, primary key columns exist, and foreign
// keys reference existing tables and columns of matching type.
func (m *PhysicalModel) Validate() []error {
	var errs []error
	for i := range m.Tables {
		t := &m.Tables[i]
		if len(t.PrimaryKeyColumns) == 0 {
			errs = append(errs, fmt.Errorf("table %q has no primary key columns", t.Name))
		}
		for _, pk := range t.PrimaryKeyColumns {
			if t.Column(pk) == nil {
				errs = append(errs, fmt.Errorf("table %q: primary key column %q does not exist", t.Name, pk))
			}
		}
		for _, fk := range t.ForeignKeys {
			ref := m.Table(fk.ReferencedTable)
			if ref == nil {
				errs = append(errs, fmt.Errorf("table %q: foreign key %q references unknown table %q", t.Name, fk.Name, fk.ReferencedTable))
				continue
			}
			if len(fk.Columns) != len(fk.ReferencedColumns) {
				errs = append(errs, fmt.Errorf("table %q: foreign key %q column count mismatch", t.Name, fk.Name))
				continue
			}
			for j, colName := range fk.Columns {
				col := t.Column(colName)
				refCol := ref.Column(fk.ReferencedColumns[j])
				if col == nil || refCol == nil {
					errs = append(errs, fmt.Errorf("table %q: foreign key %q names a missing column", t.Name, fk.Name))
					continue
				}
				if col.Type != refCol.Type {
					errs = append(errs, fmt.Errorf("table %q: foreign key column %q type %s does not match referenced %s.%s type %s",
						t.Name, colName, col.Type, ref.Name, refCol.Name, refCol.Type))
				}
			}
		}
	}
	return errs
}
