package chunk

import (
	"fmt"

	"github.com/frostlightdb/frostlight/pkg/types"
)

// DataChunk is an immutable column-major batch of rows appended to a table
// in one operation. Chunks are shared by reference: the table's chunk list
// and any reader holding a snapshot point at the same chunk, so a chunk is
// never written again once it has been built.
//
// The storage layer never inspects chunk contents. Shape and type
// conformance with the table's column descriptors is the caller's job.
type DataChunk struct {
	cols    [][]*types.DataValue
	numRows int
}

// NumRows returns the number of rows in the chunk.
func (c *DataChunk) NumRows() int {
	return c.numRows
}

// NumColumns returns the number of columns in the chunk.
func (c *DataChunk) NumColumns() int {
	return len(c.cols)
}

// Value returns the value at the given row and column.
func (c *DataChunk) Value(row, col int) *types.DataValue {
	return c.cols[col][row]
}

// Row returns all values of the given row in column order.
func (c *DataChunk) Row(row int) []*types.DataValue {
	vals := make([]*types.DataValue, len(c.cols))
	for i := range c.cols {
		vals[i] = c.cols[i][row]
	}

	return vals
}

// Builder accumulates rows and produces a DataChunk.
// A builder must not be used after Finish.
type Builder struct {
	cols     [][]*types.DataValue
	numRows  int
	finished bool
}

// NewBuilder creates a builder for chunks with the given number of columns.
func NewBuilder(numCols int) *Builder {
	return &Builder{
		cols: make([][]*types.DataValue, numCols),
	}
}

// AppendRow adds a row to the chunk being built.
// The number of values has to match the builder's column count.
func (b *Builder) AppendRow(vals ...*types.DataValue) error {
	if b.finished {
		panic("programming error: AppendRow called on a finished chunk builder")
	}
	if len(vals) != len(b.cols) {
		return fmt.Errorf("chunk builder expects %d values per row, got %d", len(b.cols), len(vals))
	}

	for i, v := range vals {
		b.cols[i] = append(b.cols[i], v)
	}
	b.numRows++
	return nil
}

// Finish seals the builder and returns the built chunk.
// The builder hands off its buffers; it cannot be reused.
func (b *Builder) Finish() *DataChunk {
	if b.finished {
		panic("programming error: Finish called twice on a chunk builder")
	}
	b.finished = true

	c := &DataChunk{
		cols:    b.cols,
		numRows: b.numRows,
	}
	b.cols = nil
	return c
}
