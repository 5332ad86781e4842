package executor

import (
	"testing"

	"github.com/frostlightdb/frostlight/pkg/binder"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/types"
	"github.com/stretchr/testify/assert"
)

func constant(v *types.DataValue) *binder.BoundExpr {
	return &binder.BoundExpr{
		Kind:       &binder.BoundConstant{Value: v},
		ReturnType: v.DataType(),
	}
}

func binaryOp(op frontend.Operator, l, r *binder.BoundExpr) *binder.BoundExpr {
	return &binder.BoundExpr{
		Kind: &binder.BoundBinaryOp{Op: op, Left: l, Right: r},
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	v, err := evaluateBoundExpr(binaryOp(frontend.OperatorPlus, constant(types.NewIntegerValue(2)), constant(types.NewIntegerValue(3))), nil)
	assert.Nil(t, err, "Unexpected error in evaluating 2 + 3")
	assert.Equal(t, int32(5), v.GetAsInt(), "Unexpected value")

	v, err = evaluateBoundExpr(binaryOp(frontend.OperatorAsterisk, constant(types.NewFloatValue(1.5)), constant(types.NewFloatValue(2.0))), nil)
	assert.Nil(t, err, "Unexpected error in evaluating 1.5 * 2.0")
	assert.Equal(t, 3.0, v.GetAsFloat(), "Unexpected value")

	v, err = evaluateBoundExpr(binaryOp(frontend.OperatorPlus, constant(types.NewStringValue("foo")), constant(types.NewStringValue("bar"))), nil)
	assert.Nil(t, err, "Unexpected error in evaluating string concatenation")
	assert.Equal(t, "foobar", v.GetAsString(), "Unexpected value")
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := evaluateBoundExpr(binaryOp(frontend.OperatorSlash, constant(types.NewIntegerValue(1)), constant(types.NewIntegerValue(0))), nil)
	assert.NotNil(t, err, "Expected an error for division by zero")

	_, err = evaluateBoundExpr(binaryOp(frontend.OperatorPercent, constant(types.NewIntegerValue(1)), constant(types.NewIntegerValue(0))), nil)
	assert.NotNil(t, err, "Expected an error for modulo by zero")
}

func TestEvaluateNullPropagation(t *testing.T) {
	v, err := evaluateBoundExpr(binaryOp(frontend.OperatorPlus, constant(types.NewIntegerValue(1)), constant(types.NewNullValue())), nil)
	assert.Nil(t, err, "Unexpected error in evaluating 1 + NULL")
	assert.True(t, v.IsNull, "Expected NULL")

	v, err = evaluateBoundExpr(binaryOp(frontend.OperatorEqual, constant(types.NewNullValue()), constant(types.NewNullValue())), nil)
	assert.Nil(t, err, "Unexpected error in evaluating NULL = NULL")
	assert.True(t, v.IsNull, "NULL = NULL should be NULL, not true")
}

func TestEvaluateColumnRef(t *testing.T) {
	row := []*types.DataValue{types.NewIntegerValue(42), types.NewStringValue("x")}
	e := &binder.BoundExpr{Kind: &binder.BoundColumnRef{Index: 0}}

	v, err := evaluateBoundExpr(e, row)
	assert.Nil(t, err, "Unexpected error in evaluating a column ref")
	assert.Equal(t, int32(42), v.GetAsInt(), "Unexpected value")

	e = &binder.BoundExpr{Kind: &binder.BoundColumnRef{Index: 5}}
	_, err = evaluateBoundExpr(e, row)
	assert.NotNil(t, err, "Expected an error for an out of range column index")
}

func TestEvaluateUnaryAndCast(t *testing.T) {
	neg := &binder.BoundExpr{Kind: &binder.BoundUnaryOp{Op: frontend.OperatorMinus, Expr: constant(types.NewIntegerValue(7))}}
	v, err := evaluateBoundExpr(neg, nil)
	assert.Nil(t, err, "Unexpected error in evaluating -7")
	assert.Equal(t, int32(-7), v.GetAsInt(), "Unexpected value")

	not := &binder.BoundExpr{Kind: &binder.BoundUnaryOp{Op: frontend.OperatorExclamation, Expr: constant(types.NewBooleanValue(true))}}
	v, err = evaluateBoundExpr(not, nil)
	assert.Nil(t, err, "Unexpected error in evaluating !true")
	assert.False(t, v.GetAsBoolean(), "Unexpected value")

	cast := &binder.BoundExpr{Kind: &binder.BoundTypeCast{Target: types.DataTypeString, Expr: constant(types.NewIntegerValue(12))}}
	v, err = evaluateBoundExpr(cast, nil)
	assert.Nil(t, err, "Unexpected error in evaluating a cast")
	assert.Equal(t, "12", v.GetAsString(), "Unexpected value")

	badCast := &binder.BoundExpr{Kind: &binder.BoundTypeCast{Target: types.DataTypeInteger, Expr: constant(types.NewBooleanValue(true))}}
	_, err = evaluateBoundExpr(badCast, nil)
	assert.NotNil(t, err, "Expected an error for an invalid cast")
}
