package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validModel() *PhysicalModel {
	fk := ForeignKey{
		Name:              "fk_order_customer_id",
		Columns:           []string{"customer_id"},
		ReferencedTable:   "customer",
		ReferencedColumns: []string{"id"},
	}
	return &PhysicalModel{
		Tables: []Table{
			{
				Name: "customer",
				Columns: []Column{
					{Name: "id", Type: TypeBigInt, PrimaryKey: true},
				},
				PrimaryKeyColumns: []string{"id"},
			},
			{
				Name: "order",
				Columns: []Column{
					{Name: "id", Type: TypeBigInt, PrimaryKey: true},
					{Name: "customer_id", Type: TypeBigInt, ForeignKey: &fk},
				},
				PrimaryKeyColumns: []string{"id"},
				ForeignKeys:       []ForeignKey{fk},
			},
		},
	}
}

func TestValidateAcceptsValidModel(t *testing.T) {
	assert.Empty(t, validModel().Validate())
}

func TestValidateRejectsMissingPrimaryKey(t *testing.T) {
	m := validModel()
	m.Tables[0].PrimaryKeyColumns = nil

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no primary key")
}

func TestValidateRejectsUnknownPrimaryKeyColumn(t *testing.T) {
	m := validModel()
	m.Tables[0].PrimaryKeyColumns = []string{"missing"}

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "does not exist")
}

func TestValidateRejectsDanglingForeignKey(t *testing.T) {
	m := validModel()
	m.Tables[1].ForeignKeys[0].ReferencedTable = "nowhere"

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "unknown table")
}

func TestValidateRejectsForeignKeyTypeMismatch(t *testing.T) {
	m := validModel()
	m.Tables[1].Columns[1].Type = TypeText

	errs := m.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "does not match")
}

func TestTableLookupHelpers(t *testing.T) {
	m := validModel()

	require.NotNil(t, m.Table("order"))
	assert.Nil(t, m.Table("nope"))
	assert.Equal(t, []string{"customer", "order"}, m.TableNames())

	order := m.Table("order")
	pk := order.PrimaryKeyColumn()
	require.NotNil(t, pk)
	assert.Equal(t, "id", pk.Name)

	assert.False(t, order.HasIndexOn("customer_id"))
	order.Indexes = append(order.Indexes, Index{Name: "idx", Columns: []string{"customer_id"}})
	assert.True(t, order.HasIndexOn("customer_id"))
}
