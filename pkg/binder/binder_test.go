package binder

import (
	"testing"

	icommon "github.com/frostlightdb/frostlight/internal/common"
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/types"
	"github.com/stretchr/testify/assert"
)

func testTableInfo() *catalog.TableInfo {
	return &catalog.TableInfo{
		ID:   1,
		Name: "students",
		Columns: []catalog.ColumnCatalog{
			{ID: 0, Desc: catalog.ColumnDesc{Name: "id", Typ: types.DataTypeInteger}},
			{ID: 1, Desc: catalog.ColumnDesc{Name: "name", Typ: types.DataTypeString, Nullable: true}},
			{ID: 2, Desc: catalog.ColumnDesc{Name: "gpa", Typ: types.DataTypeFloat, Nullable: true}},
		},
	}
}

func parseWhere(t *testing.T, where string) frontend.Expression {
	p := frontend.NewParser("testBinder", "SELECT id FROM students WHERE "+where+";")
	stmt, err := p.Parse()
	assert.Nil(t, err, "Unexpected error in parsing the test expression")
	return stmt.(*frontend.SelectStatement).Where
}

func TestBindColumnRef(t *testing.T) {
	b := NewBinder(testTableInfo())

	be, err := b.Bind(&frontend.IdentifierExpression{Identifier: "gpa"})
	assert.Nil(t, err, "Unexpected error in binding a column ref")

	ref, ok := be.Kind.(*BoundColumnRef)
	assert.True(t, ok, "Expected a bound column ref")
	assert.Equal(t, catalog.ColumnId(2), ref.ColumnID, "Unexpected column id")
	assert.Equal(t, 2, ref.Index, "Unexpected column index")
	assert.Equal(t, types.DataTypeFloat, *be.ReturnType, "Unexpected return type")
}

func TestBindUnknownColumn(t *testing.T) {
	b := NewBinder(testTableInfo())

	_, err := b.Bind(&frontend.IdentifierExpression{Identifier: "missing"})
	assert.NotNil(t, err, "Expected an error for an unknown column")
	_, ok := err.(icommon.UnknownColumnError)
	assert.True(t, ok, "Expected an unknown column error")
}

func TestBindComparisonReturnsBoolean(t *testing.T) {
	b := NewBinder(testTableInfo())

	be, err := b.Bind(parseWhere(t, "gpa > 3.5"))
	assert.Nil(t, err, "Unexpected error in binding a comparison")
	assert.Equal(t, types.DataTypeBoolean, *be.ReturnType, "Comparisons should return a boolean")

	op, ok := be.Kind.(*BoundBinaryOp)
	assert.True(t, ok, "Expected a bound binary op")
	assert.Equal(t, frontend.OperatorGreaterThan, op.Op, "Unexpected operator")
}

func TestBindArithmeticKeepsOperandType(t *testing.T) {
	b := NewBinder(testTableInfo())

	be, err := b.Bind(parseWhere(t, "id + 1 = 2"))
	assert.Nil(t, err, "Unexpected error in binding")
	assert.Equal(t, types.DataTypeBoolean, *be.ReturnType, "Equality should return a boolean")

	op := be.Kind.(*BoundBinaryOp)
	assert.Equal(t, types.DataTypeInteger, *op.Left.ReturnType, "Integer arithmetic should return an integer")
}

func TestBindTypeMismatch(t *testing.T) {
	b := NewBinder(testTableInfo())

	_, err := b.Bind(parseWhere(t, "id > name"))
	assert.NotNil(t, err, "Expected an error for mismatched operand types")
}

func TestBindLogicalRequiresBooleans(t *testing.T) {
	b := NewBinder(testTableInfo())

	_, err := b.Bind(parseWhere(t, "id && 1"))
	assert.NotNil(t, err, "Expected an error for logical op on integers")
}

func TestBindNullPropagation(t *testing.T) {
	b := NewBinder(testTableInfo())

	be, err := b.Bind(parseWhere(t, "id + NULL = 1"))
	assert.Nil(t, err, "Unexpected error in binding")

	// id + NULL is statically NULL, and so is the enclosing equality
	assert.Nil(t, be.ReturnType, "An expression with a NULL operand should have a nil return type")
}

func TestBindTypeCast(t *testing.T) {
	b := NewBinder(testTableInfo())

	be, err := b.Bind(&frontend.TypeCastExpression{
		Typ: types.DataTypeFloat,
		Exp: &frontend.IdentifierExpression{Identifier: "id"},
	})
	assert.Nil(t, err, "Unexpected error in binding a cast")
	assert.Equal(t, types.DataTypeFloat, *be.ReturnType, "Cast should return the target type")

	tc, ok := be.Kind.(*BoundTypeCast)
	assert.True(t, ok, "Expected a bound type cast")
	assert.Equal(t, types.DataTypeInteger, *tc.Expr.ReturnType, "Unexpected inner type")
}

func TestBindWithoutTableRejectsIdentifiers(t *testing.T) {
	b := NewBinder(nil)

	_, err := b.Bind(&frontend.IdentifierExpression{Identifier: "id"})
	assert.NotNil(t, err, "Expected an error for a column ref without a table")

	be, err := NewBinder(nil).Bind(&frontend.ValueExpression{Val: types.NewIntegerValue(7)})
	assert.Nil(t, err, "Unexpected error in binding a constant")
	assert.Equal(t, types.DataTypeInteger, *be.ReturnType, "Unexpected return type")
}
