package chunk

import (
	"testing"

	"github.com/frostlightdb/frostlight/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestBuilderBuildsColumnMajorChunk(t *testing.T) {
	b := NewBuilder(2)
	assert.Nil(t, b.AppendRow(types.NewIntegerValue(1), types.NewStringValue("a")), "Unexpected error in appending a row")
	assert.Nil(t, b.AppendRow(types.NewIntegerValue(2), types.NewNullValue()), "Unexpected error in appending a row")

	c := b.Finish()
	assert.Equal(t, 2, c.NumRows(), "Unexpected number of rows")
	assert.Equal(t, 2, c.NumColumns(), "Unexpected number of columns")

	assert.Equal(t, int32(1), c.Value(0, 0).GetAsInt(), "Unexpected value")
	assert.Equal(t, "a", c.Value(0, 1).GetAsString(), "Unexpected value")
	assert.Equal(t, int32(2), c.Value(1, 0).GetAsInt(), "Unexpected value")
	assert.True(t, c.Value(1, 1).IsNull, "Expected a NULL value")

	row := c.Row(1)
	assert.Equal(t, 2, len(row), "Unexpected row width")
	assert.Equal(t, int32(2), row[0].GetAsInt(), "Unexpected value")
}

func TestBuilderRejectsWrongArity(t *testing.T) {
	b := NewBuilder(2)
	err := b.AppendRow(types.NewIntegerValue(1))
	assert.NotNil(t, err, "Expected an error for a row with the wrong arity")
}

func TestBuilderPanicsAfterFinish(t *testing.T) {
	b := NewBuilder(1)
	_ = b.AppendRow(types.NewIntegerValue(1))
	_ = b.Finish()

	assert.Panics(t, func() { _ = b.AppendRow(types.NewIntegerValue(2)) }, "Expected a panic on AppendRow after Finish")
	assert.Panics(t, func() { _ = b.Finish() }, "Expected a panic on a second Finish")
}

func TestEmptyChunk(t *testing.T) {
	c := NewBuilder(3).Finish()
	assert.Equal(t, 0, c.NumRows(), "Unexpected number of rows")
	assert.Equal(t, 3, c.NumColumns(), "Unexpected number of columns")
}
