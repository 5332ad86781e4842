package catalog

import (
	"github.com/frostlightdb/frostlight/pkg/types"
)

// ColumnId uniquely identifies a column within a table.
type ColumnId uint32

// TableRefId uniquely identifies a table for its whole lifetime.
type TableRefId uint64

// ColumnDesc is the static metadata of a single column.
// It is set once at table creation and never mutated.
type ColumnDesc struct {
	Name       string
	Typ        types.DataType
	Nullable   bool
	PrimaryKey bool
}

// ColumnCatalog pairs a column id with its descriptor. An ordered slice of
// these is handed to the storage layer when a table is created.
type ColumnCatalog struct {
	ID   ColumnId
	Desc ColumnDesc
}
