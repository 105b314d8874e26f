package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umlforge/umlforge/model"
	"github.com/umlforge/umlforge/schema"
	"github.com/umlforge/umlforge/transform"
)

func transformDiagram(t *testing.T, d *model.Diagram) *schema.PhysicalModel {
	t.Helper()
	result := transform.NewEngine().Transform(d)
	require.True(t, result.Success, "errors: %v", result.Errors)
	return result.Model
}

func shopDiagram() *model.Diagram {
	return &model.Diagram{
		Elements: map[string]model.Element{
			"e1": {ID: "e1", Kind: model.KindClass, Name: "Customer", Attributes: []string{
				"id: Long {id}",
				"name: String {required}",
			}},
			"e2": {ID: "e2", Kind: model.KindClass, Name: "Order", Attributes: []string{
				"id: Long {id}",
			}},
		},
		Relationships: map[string]model.Relationship{
			"r1": {ID: "r1", Kind: model.Association, SourceID: "e1", TargetID: "e2",
				SourceMultiplicity: "1", TargetMultiplicity: "0..*"},
		},
	}
}

func TestGenerateBootstrap(t *testing.T) {
	current := transformDiagram(t, shopDiagram())
	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	m, err := gen.Generate(current, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, 1, m.Version)
	assert.Equal(t, "V1__initial_schema.sql", m.FileName)
	assert.Contains(t, m.SQL, `CREATE TABLE "customer"`)
	assert.Contains(t, m.SQL, `CREATE TABLE "order"`)
	assert.Contains(t, m.SQL, `ADD CONSTRAINT "fk_order_customer_id"`)
	assert.False(t, m.Timestamp.IsZero())
}

func TestGenerateBootstrapUUIDKeyStaysReferenceable(t *testing.T) {
	d := &model.Diagram{
		Elements: map[string]model.Element{
			"e1": {ID: "e1", Kind: model.KindClass, Name: "User", Attributes: []string{
				"id: uuid {id}",
			}},
			"e2": {ID: "e2", Kind: model.KindClass, Name: "Post", Attributes: []string{
				"id: uuid {id}",
			}},
		},
		Relationships: map[string]model.Relationship{
			"r1": {ID: "r1", Kind: model.Association, SourceID: "e1", TargetID: "e2",
				SourceMultiplicity: "1", TargetMultiplicity: "0..*"},
		},
	}
	current := transformDiagram(t, d)
	require.Empty(t, current.Validate())

	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	m, err := gen.Generate(current, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, m)

	// The key and the column referencing it must carry the same type or
	// the ADD CONSTRAINT statement fails outright.
	assert.Contains(t, m.SQL, `"id" UUID NOT NULL`)
	assert.Contains(t, m.SQL, `ALTER TABLE "post" ADD COLUMN "user_id" UUID NOT NULL;`)
	assert.Contains(t, m.SQL, `ADD CONSTRAINT "fk_post_user_id" FOREIGN KEY ("user_id") REFERENCES "user" ("id");`)
	assert.NotContains(t, m.SQL, "SERIAL")
}

func TestGenerateBootstrapIsDeterministic(t *testing.T) {
	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	first, err := gen.Generate(transformDiagram(t, shopDiagram()), nil, nil)
	require.NoError(t, err)
	second, err := gen.Generate(transformDiagram(t, shopDiagram()), nil, nil)
	require.NoError(t, err)

	// No hidden counters: same input, same version and same SQL.
	assert.Equal(t, 1, second.Version)
	assert.Equal(t, first.SQL, second.SQL)
}

func TestGenerateBootstrapIgnoresExistingFileNames(t *testing.T) {
	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	m, err := gen.Generate(transformDiagram(t, shopDiagram()), nil, []string{"V1__initial_schema.sql", "V2__x.sql"})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version, "no previous model always forces a bootstrap")
}

func TestGenerateIncremental(t *testing.T) {
	previous := transformDiagram(t, shopDiagram())

	d := shopDiagram()
	e2 := d.Elements["e2"]
	e2.Attributes = append(e2.Attributes, "total: Decimal {required}")
	d.Elements["e2"] = e2
	current := transformDiagram(t, d)

	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	m, err := gen.Generate(current, previous, []string{"V1__initial_schema.sql", "V3__y.sql"})
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, 4, m.Version, "max-based, not count-based")
	assert.Equal(t, "V4__alter_1_table.sql", m.FileName)
	assert.Contains(t, m.SQL, `ALTER TABLE "order" ADD COLUMN "total" DECIMAL(19,4) NOT NULL;`)
	assert.NotContains(t, m.SQL, "CREATE TABLE")
}

func TestGenerateNoChangesReturnsNil(t *testing.T) {
	current := transformDiagram(t, shopDiagram())
	previous := transformDiagram(t, shopDiagram())

	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	m, err := gen.Generate(current, previous, []string{"V1__initial_schema.sql"})
	require.NoError(t, err)
	assert.Nil(t, m, "an empty change set is not an error")
}

func TestGenerateDroppedTableIsLastStatement(t *testing.T) {
	previous := transformDiagram(t, shopDiagram())

	d := shopDiagram()
	delete(d.Elements, "e2")
	delete(d.Relationships, "r1")
	current := transformDiagram(t, d)

	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	m, err := gen.Generate(current, previous, []string{"V1__initial_schema.sql"})
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Contains(t, m.SQL, `DROP TABLE "order" CASCADE;`)
	assert.Equal(t, "V2__drop_1_table.sql", m.FileName)
}

func TestGenerateRequiresCurrentModel(t *testing.T) {
	gen, err := NewGenerator("postgres")
	require.NoError(t, err)

	_, err = gen.Generate(nil, nil, nil)
	assert.Error(t, err)
}
