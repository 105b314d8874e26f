package sqlgen

import (
	"fmt"
	"strings"

	"github.com/umlforge/umlforge/migrate/plan"
	"github.com/umlforge/umlforge/schema"
)

// SQLiteRenderer renders migration SQL for SQLite. SQLite cannot add
// constraints or alter column definitions after table creation, so those
// statements are emitted as comments with an inline FOREIGN KEY fallback
// in CREATE TABLE where possible.
type SQLiteRenderer struct{}

// NewSQLiteRenderer creates a SQLite renderer.
func NewSQLiteRenderer() *SQLiteRenderer {
	return &SQLiteRenderer{}
}

// Dialect returns the dialect name.
func (r *SQLiteRenderer) Dialect() string { return "sqlite" }

// Render renders the plan to a SQLite migration script.
func (r *SQLiteRenderer) Render(stmts []plan.Statement) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		switch stmt.Kind {
		case plan.CreateTable:
			r.renderCreateTable(&b, stmt)
		case plan.AddColumn:
			fmt.Fprintf(&b, "ALTER TABLE %s ADD COLUMN %s;\n", quote(stmt.Table), r.columnDef(stmt.Column))
		case plan.AddForeignKey:
			fk := stmt.ForeignKey
			fmt.Fprintf(&b, "-- SQLite cannot add a constraint to an existing table:\n")
			fmt.Fprintf(&b, "-- ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s);\n",
				quote(stmt.Table), quote(fk.Name), quoteList(fk.Columns, quote),
				quote(fk.ReferencedTable), quoteList(fk.ReferencedColumns, quote))
		case plan.CreateIndex:
			renderCreateIndex(&b, stmt, quote)
		case plan.AlterColumn:
			fmt.Fprintf(&b, "-- SQLite cannot alter a column in place, recreate the table to apply:\n")
			fmt.Fprintf(&b, "-- %s.%s -> %s\n", stmt.Table, stmt.Column.Name, r.columnType(stmt.Column.Type))
		case plan.DropColumn:
			renderDropColumn(&b, stmt, quote)
		case plan.DropTable:
			fmt.Fprintf(&b, "DROP TABLE %s;\n", quote(stmt.Table))
		}
	}
	return b.String()
}

func (r *SQLiteRenderer) renderCreateTable(b *strings.Builder, stmt plan.Statement) {
	t := stmt.Create
	fmt.Fprintf(b, "CREATE TABLE %s (\n", quote(t.Name))
	var lines []string
	inlinePK := false
	for i := range t.Columns {
		col := &t.Columns[i]
		if !plan.IsBaseColumn(col) {
			continue
		}
		if stmt.AutoIncrement && col.PrimaryKey {
			lines = append(lines, fmt.Sprintf("    %s INTEGER PRIMARY KEY AUTOINCREMENT", quote(col.Name)))
			inlinePK = true
			continue
		}
		lines = append(lines, "    "+r.columnDef(col))
	}
	if !inlinePK && len(t.PrimaryKeyColumns) > 0 {
		lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", quoteList(t.PrimaryKeyColumns, quote)))
	}
	for _, uc := range t.UniqueConstraints {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s UNIQUE (%s)", quote(uc.Name), quoteList(uc.Columns, quote)))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
}

func (r *SQLiteRenderer) columnDef(col *schema.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", quote(col.Name), r.columnType(col.Type))
	if !col.Nullable {
		b.WriteString(" NOT NULL")
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	if col.DefaultNow {
		b.WriteString(" DEFAULT CURRENT_TIMESTAMP")
	}
	return b.String()
}

func (r *SQLiteRenderer) columnType(t schema.DataType) string {
	switch t {
	case schema.TypeInteger, schema.TypeBigInt, schema.TypeBoolean:
		return "INTEGER"
	case schema.TypeDecimal, schema.TypeFloat:
		return "REAL"
	case schema.TypeBinary:
		return "BLOB"
	case schema.TypeDate, schema.TypeTimestamp:
		return "TEXT"
	default:
		return "TEXT"
	}
}
