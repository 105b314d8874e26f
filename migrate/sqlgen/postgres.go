package sqlgen

import (
	"fmt"
	"strings"

	"github.com/umlforge/umlforge/migrate/plan"
	"github.com/umlforge/umlforge/schema"
)

// PostgresRenderer renders migration SQL for PostgreSQL.
type PostgresRenderer struct{}

// NewPostgresRenderer creates a PostgreSQL renderer.
func NewPostgresRenderer() *PostgresRenderer {
	return &PostgresRenderer{}
}

// Dialect returns the dialect name.
func (r *PostgresRenderer) Dialect() string { return "postgres" }

// Render renders the plan to a PostgreSQL migration script.
func (r *PostgresRenderer) Render(stmts []plan.Statement) string {
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
			r.renderAddForeignKey(&b, stmt)
		case plan.CreateIndex:
			renderCreateIndex(&b, stmt, quote)
		case plan.AlterColumn:
			r.renderAlterColumn(&b, stmt)
		case plan.DropColumn:
			renderDropColumn(&b, stmt, quote)
		case plan.DropTable:
			fmt.Fprintf(&b, "DROP TABLE %s CASCADE;\n", quote(stmt.Table))
		}
	}
	return b.String()
}

func (r *PostgresRenderer) renderCreateTable(b *strings.Builder, stmt plan.Statement) {
	t := stmt.Create
	fmt.Fprintf(b, "CREATE TABLE %s (\n", quote(t.Name))
	var lines []string
	for i := range t.Columns {
		col := &t.Columns[i]
		if !plan.IsBaseColumn(col) {
			continue
		}
		if stmt.AutoIncrement && col.PrimaryKey {
			lines = append(lines, fmt.Sprintf("    %s %s", quote(col.Name), r.serialType(col.Type)))
			continue
		}
		lines = append(lines, "    "+r.columnDef(col))
	}
	if len(t.PrimaryKeyColumns) > 0 {
		lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", quoteList(t.PrimaryKeyColumns, quote)))
	}
	for _, uc := range t.UniqueConstraints {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s UNIQUE (%s)", quote(uc.Name), quoteList(uc.Columns, quote)))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
}

func (r *PostgresRenderer) renderAddForeignKey(b *strings.Builder, stmt plan.Statement) {
	fk := stmt.ForeignKey
	fmt.Fprintf(b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		quote(stmt.Table), quote(fk.Name), quoteList(fk.Columns, quote),
		quote(fk.ReferencedTable), quoteList(fk.ReferencedColumns, quote))
	if fk.OnDelete == schema.Cascade {
		b.WriteString(" ON DELETE CASCADE")
	}
	b.WriteString(";\n")
}

func (r *PostgresRenderer) renderAlterColumn(b *strings.Builder, stmt plan.Statement) {
	col := stmt.Column
	fmt.Fprintf(b, "ALTER TABLE %s ALTER COLUMN %s TYPE %s;\n", quote(stmt.Table), quote(col.Name), r.columnType(col.Type))
	if col.Nullable {
		fmt.Fprintf(b, "ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL;\n", quote(stmt.Table), quote(col.Name))
	} else {
		fmt.Fprintf(b, "ALTER TABLE %s ALTER COLUMN %s SET NOT NULL;\n", quote(stmt.Table), quote(col.Name))
	}
}

// columnDef renders `"name" TYPE [NOT NULL] [UNIQUE] [DEFAULT now()]`.
func (r *PostgresRenderer) columnDef(col *schema.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", quote(col.Name), r.columnType(col.Type))
	if !col.Nullable {
		b.WriteString(" NOT NULL")
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	if col.DefaultNow {
		b.WriteString(" DEFAULT now()")
	}
	return b.String()
}

func (r *PostgresRenderer) columnType(t schema.DataType) string {
	switch t {
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeBigInt:
		return "BIGINT"
	case schema.TypeText:
		return "TEXT"
	case schema.TypeVarchar:
		return "VARCHAR(255)"
	case schema.TypeDecimal:
		return "DECIMAL(19,4)"
	case schema.TypeFloat:
		return "DOUBLE PRECISION"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeTimestamp:
		return "TIMESTAMP"
	case schema.TypeBoolean:
		return "BOOLEAN"
	case schema.TypeBinary:
		return "BYTEA"
	case schema.TypeIdentifier:
		return "UUID"
	default:
		return "TEXT"
	}
}

func (r *PostgresRenderer) serialType(t schema.DataType) string {
	if t == schema.TypeBigInt {
		return "BIGSERIAL"
	}
	return "SERIAL"
}

func quote(name string) string {
	return `"` + name + `"`
}

func quoteList(names []string, q func(string) string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = q(n)
	}
	return strings.Join(quoted, ", ")
}

func renderCreateIndex(b *strings.Builder, stmt plan.Statement, q func(string) string) {
	idx := stmt.Index
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	fmt.Fprintf(b, "CREATE %sINDEX %s ON %s (%s);\n", unique, q(idx.Name), q(stmt.Table), quoteList(idx.Columns, q))
}

// renderDropColumn always emits the drop commented out: destructive
// column drops require human review before they run.
func renderDropColumn(b *strings.Builder, stmt plan.Statement, q func(string) string) {
	fmt.Fprintf(b, "-- Destructive change, review before enabling:\n")
	fmt.Fprintf(b, "-- ALTER TABLE %s DROP COLUMN %s;\n", q(stmt.Table), q(stmt.ColumnName))
}
