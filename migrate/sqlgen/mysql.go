package sqlgen

import (
	"fmt"
	"strings"

	"github.com/umlforge/umlforge/migrate/plan"
	"github.com/umlforge/umlforge/schema"
)

// MySQLRenderer renders migration SQL for MySQL.
type MySQLRenderer struct{}

// NewMySQLRenderer creates a MySQL renderer.
func NewMySQLRenderer() *MySQLRenderer {
	return &MySQLRenderer{}
}

// Dialect returns the dialect name.
func (r *MySQLRenderer) Dialect() string { return "mysql" }

// Render renders the plan to a MySQL migration script.
func (r *MySQLRenderer) Render(stmts []plan.Statement) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		switch stmt.Kind {
		case plan.CreateTable:
			r.renderCreateTable(&b, stmt)
		case plan.AddColumn:
			fmt.Fprintf(&b, "ALTER TABLE %s ADD COLUMN %s;\n", backtick(stmt.Table), r.columnDef(stmt.Column, false))
		case plan.AddForeignKey:
			r.renderAddForeignKey(&b, stmt)
		case plan.CreateIndex:
			renderCreateIndex(&b, stmt, backtick)
		case plan.AlterColumn:
			fmt.Fprintf(&b, "ALTER TABLE %s MODIFY COLUMN %s;\n", backtick(stmt.Table), r.columnDef(stmt.Column, false))
		case plan.DropColumn:
			renderDropColumn(&b, stmt, backtick)
		case plan.DropTable:
			fmt.Fprintf(&b, "DROP TABLE %s;\n", backtick(stmt.Table))
		}
	}
	return b.String()
}

func (r *MySQLRenderer) renderCreateTable(b *strings.Builder, stmt plan.Statement) {
	t := stmt.Create
	fmt.Fprintf(b, "CREATE TABLE %s (\n", backtick(t.Name))
	var lines []string
	for i := range t.Columns {
		col := &t.Columns[i]
		if !plan.IsBaseColumn(col) {
			continue
		}
		lines = append(lines, "    "+r.columnDef(col, stmt.AutoIncrement && col.PrimaryKey))
	}
	if len(t.PrimaryKeyColumns) > 0 {
		lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", quoteList(t.PrimaryKeyColumns, backtick)))
	}
	for _, uc := range t.UniqueConstraints {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s UNIQUE (%s)", backtick(uc.Name), quoteList(uc.Columns, backtick)))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
}

func (r *MySQLRenderer) renderAddForeignKey(b *strings.Builder, stmt plan.Statement) {
	fk := stmt.ForeignKey
	fmt.Fprintf(b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		backtick(stmt.Table), backtick(fk.Name), quoteList(fk.Columns, backtick),
		backtick(fk.ReferencedTable), quoteList(fk.ReferencedColumns, backtick))
	if fk.OnDelete == schema.Cascade {
		b.WriteString(" ON DELETE CASCADE")
	}
	b.WriteString(";\n")
}

func (r *MySQLRenderer) columnDef(col *schema.Column, autoIncrement bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", backtick(col.Name), r.columnType(col.Type))
	if !col.Nullable {
		b.WriteString(" NOT NULL")
	}
	if autoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	if col.DefaultNow {
		b.WriteString(" DEFAULT CURRENT_TIMESTAMP")
	}
	return b.String()
}

func (r *MySQLRenderer) columnType(t schema.DataType) string {
	switch t {
	case schema.TypeInteger:
		return "INT"
	case schema.TypeBigInt:
		return "BIGINT"
	case schema.TypeText:
		return "TEXT"
	case schema.TypeVarchar:
		return "VARCHAR(255)"
	case schema.TypeDecimal:
		return "DECIMAL(19,4)"
	case schema.TypeFloat:
		return "DOUBLE"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeTimestamp:
		return "DATETIME"
	case schema.TypeBoolean:
		return "TINYINT(1)"
	case schema.TypeBinary:
		return "BLOB"
	case schema.TypeIdentifier:
		return "CHAR(36)"
	default:
		return "TEXT"
	}
}

func backtick(name string) string {
	return "`" + name + "`"
}
