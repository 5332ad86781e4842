package frontend

import "github.com/frostlightdb/frostlight/pkg/types"

var (
	_ Statement = (*CreateTableStatement)(nil)
	_ Statement = (*DropTableStatement)(nil)
)

// CreateTableStatement is the parsed form of a CREATE TABLE query.
type CreateTableStatement struct {
	Spec *TableSpec
}

func (cts *CreateTableStatement) statement() {}

type DropTableStatement struct {
	TableName string
}

func (dts *DropTableStatement) statement() {}

// TableSpec defines the specification of a table
type TableSpec struct {
	TableName string
	Columns   []*ColumnSpec
}

// ColumnSpec defines a single column of a table
type ColumnSpec struct {
	Name       string
	Typ        types.DataType
	Nullable   bool
	PrimaryKey bool
}

// NewTableSpec creates a table spec with the given name and columns.
func NewTableSpec(name string, columns []*ColumnSpec) *TableSpec {
	return &TableSpec{
		TableName: name,
		Columns:   columns,
	}
}
