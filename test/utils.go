package test

import (
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/chunk"
	"github.com/frostlightdb/frostlight/pkg/types"
)

var (
	// TestTableID - id of the table used across storage tests
	TestTableID catalog.TableRefId = 1

	// TestColumns - columns of the table used across storage tests
	TestColumns = []catalog.ColumnCatalog{
		{ID: 0, Desc: catalog.ColumnDesc{Name: "id", Typ: types.DataTypeInteger, PrimaryKey: true}},
		{ID: 1, Desc: catalog.ColumnDesc{Name: "name", Typ: types.DataTypeString, Nullable: true}},
	}
)

// NewTestChunk builds a chunk of (id, name) rows from the given pairs.
func NewTestChunk(ids []int32, names []string) *chunk.DataChunk {
	b := chunk.NewBuilder(2)
	for i := range ids {
		var name *types.DataValue
		if i < len(names) {
			name = types.NewStringValue(names[i])
		} else {
			name = types.NewNullValue()
		}
		if err := b.AppendRow(types.NewIntegerValue(ids[i]), name); err != nil {
			panic(err)
		}
	}
	return b.Finish()
}
