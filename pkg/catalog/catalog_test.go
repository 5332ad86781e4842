package catalog

import (
	"testing"

	icommon "github.com/frostlightdb/frostlight/internal/common"
	"github.com/frostlightdb/frostlight/pkg/types"
	"github.com/stretchr/testify/assert"
)

var testColumns = []ColumnDesc{
	{Name: "id", Typ: types.DataTypeInteger, PrimaryKey: true},
	{Name: "name", Typ: types.DataTypeString, Nullable: true},
}

func TestCreateAndLookupTable(t *testing.T) {
	c := NewCatalog()

	ti, err := c.CreateTable("students", testColumns)
	assert.Nil(t, err, "Unexpected error in creating the table")
	assert.Equal(t, "students", ti.Name, "Unexpected table name")
	assert.Equal(t, 2, len(ti.Columns), "Unexpected number of columns")

	// column ids follow declaration order
	assert.Equal(t, ColumnId(0), ti.Columns[0].ID, "Unexpected column id")
	assert.Equal(t, ColumnId(1), ti.Columns[1].ID, "Unexpected column id")

	byName, err := c.TableByName("students")
	assert.Nil(t, err, "Unexpected error in looking up the table by name")
	byID, err := c.TableByID(ti.ID)
	assert.Nil(t, err, "Unexpected error in looking up the table by id")
	assert.Equal(t, byName, byID, "Expected the same table")

	col, ok := ti.ColumnByName("name")
	assert.True(t, ok, "Expected to find the column")
	assert.Equal(t, types.DataTypeString, col.Desc.Typ, "Unexpected column type")

	_, ok = ti.ColumnByName("missing")
	assert.False(t, ok, "Expected to not find a missing column")
}

func TestCreateDuplicateTableName(t *testing.T) {
	c := NewCatalog()

	_, err := c.CreateTable("students", testColumns)
	assert.Nil(t, err, "Unexpected error in creating the table")

	_, err = c.CreateTable("students", testColumns)
	assert.NotNil(t, err, "Expected an error in creating a duplicate table")
	_, ok := err.(icommon.AlreadyExistsError)
	assert.True(t, ok, "Expected an already exists error")
}

func TestCreateTableWithDuplicateColumn(t *testing.T) {
	c := NewCatalog()

	_, err := c.CreateTable("students", []ColumnDesc{
		{Name: "id", Typ: types.DataTypeInteger},
		{Name: "id", Typ: types.DataTypeString},
	})
	assert.NotNil(t, err, "Expected an error for a duplicate column")
	_, ok := err.(icommon.AlreadyExistsError)
	assert.True(t, ok, "Expected an already exists error")
}

func TestDropTable(t *testing.T) {
	c := NewCatalog()

	ti, err := c.CreateTable("students", testColumns)
	assert.Nil(t, err, "Unexpected error in creating the table")

	_, err = c.DropTable("students")
	assert.Nil(t, err, "Unexpected error in dropping the table")

	_, err = c.TableByName("students")
	assert.NotNil(t, err, "Expected an error in looking up a dropped table")
	_, err = c.TableByID(ti.ID)
	assert.NotNil(t, err, "Expected an error in looking up a dropped table")

	// the name is free for reuse
	_, err = c.CreateTable("students", testColumns)
	assert.Nil(t, err, "Unexpected error in recreating the table")
}
