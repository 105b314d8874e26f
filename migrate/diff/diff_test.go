package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umlforge/umlforge/schema"
)

func baseModel() *schema.PhysicalModel {
	return &schema.PhysicalModel{
		Tables: []schema.Table{
			{
				Name: "customer",
				Columns: []schema.Column{
					{Name: "id", Type: schema.TypeBigInt, PrimaryKey: true},
					{Name: "name", Type: schema.TypeText},
				},
				PrimaryKeyColumns: []string{"id"},
			},
			{
				Name: "order",
				Columns: []schema.Column{
					{Name: "id", Type: schema.TypeBigInt, PrimaryKey: true},
				},
				PrimaryKeyColumns: []string{"id"},
			},
		},
	}
}

func TestCompareIdenticalModels(t *testing.T) {
	m := baseModel()
	cs := Compare(m, m)

	assert.False(t, cs.HasChanges)
	assert.Empty(t, cs.NewTables)
	assert.Empty(t, cs.DeletedTables)
	assert.Empty(t, cs.ModifiedTables)
}

func TestCompareDetectsNewAndDeletedTables(t *testing.T) {
	previous := baseModel()
	current := baseModel()
	current.Tables = append(current.Tables[:1], schema.Table{
		Name:              "invoice",
		Columns:           []schema.Column{{Name: "id", Type: schema.TypeBigInt, PrimaryKey: true}},
		PrimaryKeyColumns: []string{"id"},
	})

	cs := Compare(previous, current)

	assert.True(t, cs.HasChanges)
	assert.Equal(t, []string{"invoice"}, cs.NewTables)
	assert.Equal(t, []string{"order"}, cs.DeletedTables)
	assert.Empty(t, cs.ModifiedTables)
}

func TestCompareDetectsNewColumns(t *testing.T) {
	previous := baseModel()
	current := baseModel()
	current.Tables[0].Columns = append(current.Tables[0].Columns, schema.Column{
		Name: "email", Type: schema.TypeText, Nullable: true,
	})

	cs := Compare(previous, current)

	require.Len(t, cs.ModifiedTables, 1)
	tc := cs.ModifiedTables[0]
	assert.Equal(t, "customer", tc.Table)
	require.Len(t, tc.NewColumns, 1)
	assert.Equal(t, "email", tc.NewColumns[0].Name)
	assert.Empty(t, tc.DeletedColumns)
}

func TestCompareDetectsDeletedColumns(t *testing.T) {
	previous := baseModel()
	current := baseModel()
	current.Tables[0].Columns = current.Tables[0].Columns[:1]

	cs := Compare(previous, current)

	require.Len(t, cs.ModifiedTables, 1)
	assert.Equal(t, []string{"name"}, cs.ModifiedTables[0].DeletedColumns)
}

func TestCompareDetectsModifiedColumns(t *testing.T) {
	previous := baseModel()
	current := baseModel()
	current.Tables[0].Columns[1].Type = schema.TypeVarchar
	current.Tables[0].Columns[1].Nullable = true

	cs := Compare(previous, current)

	require.Len(t, cs.ModifiedTables, 1)
	require.Len(t, cs.ModifiedTables[0].ModifiedColumns, 1)
	mc := cs.ModifiedTables[0].ModifiedColumns[0]
	assert.Equal(t, "name", mc.Name)
	assert.Equal(t, schema.TypeText, mc.Previous.Type)
	assert.Equal(t, schema.TypeVarchar, mc.Current.Type)
}

func TestCompareCollectsNewForeignKeys(t *testing.T) {
	previous := baseModel()
	current := baseModel()
	fk := schema.ForeignKey{
		Name:              "fk_order_customer_id",
		Columns:           []string{"customer_id"},
		ReferencedTable:   "customer",
		ReferencedColumns: []string{"id"},
	}
	current.Tables[1].Columns = append(current.Tables[1].Columns, schema.Column{
		Name: "customer_id", Type: schema.TypeBigInt, ForeignKey: &fk,
	})

	cs := Compare(previous, current)

	require.Len(t, cs.ModifiedTables, 1)
	require.Len(t, cs.ModifiedTables[0].NewForeignKeys, 1)
	assert.Equal(t, "customer", cs.ModifiedTables[0].NewForeignKeys[0].ReferencedTable)
}

func TestCompareRenameIsDeletePlusAdd(t *testing.T) {
	previous := baseModel()
	current := baseModel()
	current.Tables[0].Columns[1].Name = "full_name"

	cs := Compare(previous, current)

	require.Len(t, cs.ModifiedTables, 1)
	tc := cs.ModifiedTables[0]
	require.Len(t, tc.NewColumns, 1)
	assert.Equal(t, "full_name", tc.NewColumns[0].Name)
	assert.Equal(t, []string{"name"}, tc.DeletedColumns)
	assert.Empty(t, tc.ModifiedColumns)
}
