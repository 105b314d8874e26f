package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umlforge/umlforge/migrate/diff"
	"github.com/umlforge/umlforge/schema"
)

// cyclicModel has two tables referencing each other, the case the
// four-pass ordering exists for.
func cyclicModel() *schema.PhysicalModel {
	aFK := schema.ForeignKey{Name: "fk_a_b_id", Columns: []string{"b_id"}, ReferencedTable: "b", ReferencedColumns: []string{"id"}}
	bFK := schema.ForeignKey{Name: "fk_b_a_id", Columns: []string{"a_id"}, ReferencedTable: "a", ReferencedColumns: []string{"id"}}
	return &schema.PhysicalModel{
		Tables: []schema.Table{
			{
				Name: "a",
				Columns: []schema.Column{
					{Name: "id", Type: schema.TypeBigInt, PrimaryKey: true},
					{Name: "b_id", Type: schema.TypeBigInt, Nullable: true, ForeignKey: &aFK},
				},
				PrimaryKeyColumns: []string{"id"},
				ForeignKeys:       []schema.ForeignKey{aFK},
				Indexes:           []schema.Index{{Name: "idx_a_b_id", Columns: []string{"b_id"}}},
			},
			{
				Name: "b",
				Columns: []schema.Column{
					{Name: "id", Type: schema.TypeBigInt, PrimaryKey: true},
					{Name: "a_id", Type: schema.TypeBigInt, Nullable: true, ForeignKey: &bFK},
				},
				PrimaryKeyColumns: []string{"id"},
				ForeignKeys:       []schema.ForeignKey{bFK},
				Indexes:           []schema.Index{{Name: "idx_b_a_id", Columns: []string{"a_id"}}},
			},
		},
		Sequences: []schema.Sequence{
			{Name: "a_seq", Table: "a"},
			{Name: "b_seq", Table: "b"},
		},
	}
}

func kinds(stmts []Statement) []Kind {
	result := make([]Kind, len(stmts))
	for i, s := range stmts {
		result[i] = s.Kind
	}
	return result
}

func TestBootstrapFourPassOrdering(t *testing.T) {
	stmts := Bootstrap(cyclicModel())

	assert.Equal(t, []Kind{
		CreateTable, CreateTable,
		AddColumn, AddColumn,
		AddForeignKey, AddForeignKey,
		CreateIndex, CreateIndex,
	}, kinds(stmts))

	// Both creates precede any foreign key material, so the cycle between
	// a and b needs no dependency sorting.
	assert.Equal(t, "a", stmts[0].Table)
	assert.Equal(t, "b", stmts[1].Table)
	assert.True(t, stmts[0].AutoIncrement)
}

func TestBootstrapKeepsPrimaryKeyColumnsInCreate(t *testing.T) {
	junctionFK1 := schema.ForeignKey{Name: "fk_j_a", Columns: []string{"a_id"}, ReferencedTable: "a", ReferencedColumns: []string{"id"}}
	junctionFK2 := schema.ForeignKey{Name: "fk_j_b", Columns: []string{"b_id"}, ReferencedTable: "b", ReferencedColumns: []string{"id"}}
	m := cyclicModel()
	m.Tables = append(m.Tables, schema.Table{
		Name: "a_b",
		Columns: []schema.Column{
			{Name: "a_id", Type: schema.TypeBigInt, PrimaryKey: true, ForeignKey: &junctionFK1},
			{Name: "b_id", Type: schema.TypeBigInt, PrimaryKey: true, ForeignKey: &junctionFK2},
		},
		PrimaryKeyColumns: []string{"a_id", "b_id"},
		ForeignKeys:       []schema.ForeignKey{junctionFK1, junctionFK2},
	})

	stmts := Bootstrap(m)

	var junctionCreate *Statement
	var junctionAdds int
	for i := range stmts {
		if stmts[i].Table == "a_b" {
			switch stmts[i].Kind {
			case CreateTable:
				junctionCreate = &stmts[i]
			case AddColumn:
				junctionAdds++
			}
		}
	}
	require.NotNil(t, junctionCreate)
	assert.False(t, junctionCreate.AutoIncrement, "composite key tables get no sequence")
	assert.Zero(t, junctionAdds, "junction key columns belong in CREATE TABLE, not ALTER")
}

func TestBootstrapNonIntegerKeyIsNotAutoIncrement(t *testing.T) {
	m := &schema.PhysicalModel{
		Tables: []schema.Table{
			{
				Name: "user",
				Columns: []schema.Column{
					{Name: "id", Type: schema.TypeIdentifier, PrimaryKey: true},
				},
				PrimaryKeyColumns: []string{"id"},
			},
		},
		Sequences: []schema.Sequence{{Name: "user_seq", Table: "user"}},
	}

	stmts := Bootstrap(m)

	require.Len(t, stmts, 1)
	// Auto-increment would rewrite the key to an integer type and break
	// every foreign key column referencing it.
	assert.False(t, stmts[0].AutoIncrement, "uuid keys keep their declared type")
}

func TestIncrementalOrdering(t *testing.T) {
	current := cyclicModel()
	fk := schema.ForeignKey{Name: "fk_b_c", Columns: []string{"c_id"}, ReferencedTable: "c", ReferencedColumns: []string{"id"}}
	changes := &diff.ChangeSet{
		NewTables:     []string{"a"},
		DeletedTables: []string{"legacy"},
		ModifiedTables: []diff.TableChange{
			{
				Table:          "b",
				NewColumns:     []schema.Column{{Name: "c_id", Type: schema.TypeBigInt, ForeignKey: &fk}},
				NewForeignKeys: []schema.ForeignKey{fk},
				DeletedColumns: []string{"obsolete"},
			},
		},
		HasChanges: true,
	}

	stmts := Incremental(changes, current)

	assert.Equal(t, []Kind{
		CreateTable, AddColumn, AddForeignKey, CreateIndex, // new table a, four passes
		AddColumn,     // b.c_id
		AddForeignKey, // fk_b_c
		DropColumn,    // commented
		DropTable,     // legacy, always last
	}, kinds(stmts))

	drop := stmts[len(stmts)-1]
	assert.Equal(t, "legacy", drop.Table)

	dropCol := stmts[len(stmts)-2]
	assert.Equal(t, DropColumn, dropCol.Kind)
	assert.True(t, dropCol.Disabled, "column drops are never auto-applied")
}

func TestIncrementalNoChangesPlansNothing(t *testing.T) {
	stmts := Incremental(&diff.ChangeSet{}, cyclicModel())
	assert.Empty(t, stmts)
}
