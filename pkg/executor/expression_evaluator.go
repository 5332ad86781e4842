/**
 * Copyright 2021 The FrostlightDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package executor

import (
	"fmt"
	"strconv"

	"github.com/frostlightdb/frostlight/pkg/binder"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/types"
)

// evaluateBoundExpr evaluates a bound expression against a single row.
// row may be nil for expressions without column references.
// A NULL operand anywhere makes the result NULL.
func evaluateBoundExpr(expr *binder.BoundExpr, row []*types.DataValue) (*types.DataValue, error) {
	switch k := expr.Kind.(type) {
	case *binder.BoundConstant:
		return k.Value, nil

	case *binder.BoundColumnRef:
		if k.Index >= len(row) {
			return nil, fmt.Errorf("executor::expression_evaluator::evaluateBoundExpr: column index %d out of range for row of width %d", k.Index, len(row))
		}
		return row[k.Index], nil

	case *binder.BoundBinaryOp:
		return evaluateBinaryOp(k, row)

	case *binder.BoundUnaryOp:
		return evaluateUnaryOp(k, row)

	case *binder.BoundTypeCast:
		return evaluateTypeCast(k, row)
	}

	panic("programming error: unexhaustive switch case in evaluateBoundExpr")
}

func evaluateBinaryOp(e *binder.BoundBinaryOp, row []*types.DataValue) (*types.DataValue, error) {
	lv, err := evaluateBoundExpr(e.Left, row)
	if err != nil {
		return nil, err
	}
	rv, err := evaluateBoundExpr(e.Right, row)
	if err != nil {
		return nil, err
	}

	if lv.IsNull || rv.IsNull {
		return types.NewNullValue(), nil
	}

	switch e.Op {
	case frontend.OperatorEqual:
		return types.NewBooleanValue(lv.Val == rv.Val), nil

	case frontend.OperatorNotEqual:
		return types.NewBooleanValue(lv.Val != rv.Val), nil

	case frontend.OperatorGreaterThan:
		switch lv.Typ {
		case types.DataTypeFloat:
			return types.NewBooleanValue(lv.GetAsFloat() > rv.GetAsFloat()), nil
		case types.DataTypeInteger:
			return types.NewBooleanValue(lv.GetAsInt() > rv.GetAsInt()), nil
		default:
			return types.NewBooleanValue(lv.GetAsString() > rv.GetAsString()), nil
		}

	case frontend.OperatorGreaterThanEqualTo:
		switch lv.Typ {
		case types.DataTypeFloat:
			return types.NewBooleanValue(lv.GetAsFloat() >= rv.GetAsFloat()), nil
		case types.DataTypeInteger:
			return types.NewBooleanValue(lv.GetAsInt() >= rv.GetAsInt()), nil
		default:
			return types.NewBooleanValue(lv.GetAsString() >= rv.GetAsString()), nil
		}

	case frontend.OperatorLessThan:
		switch lv.Typ {
		case types.DataTypeFloat:
			return types.NewBooleanValue(lv.GetAsFloat() < rv.GetAsFloat()), nil
		case types.DataTypeInteger:
			return types.NewBooleanValue(lv.GetAsInt() < rv.GetAsInt()), nil
		default:
			return types.NewBooleanValue(lv.GetAsString() < rv.GetAsString()), nil
		}

	case frontend.OperatorLessThanEqualTo:
		switch lv.Typ {
		case types.DataTypeFloat:
			return types.NewBooleanValue(lv.GetAsFloat() <= rv.GetAsFloat()), nil
		case types.DataTypeInteger:
			return types.NewBooleanValue(lv.GetAsInt() <= rv.GetAsInt()), nil
		default:
			return types.NewBooleanValue(lv.GetAsString() <= rv.GetAsString()), nil
		}

	case frontend.OperatorPlus:
		switch lv.Typ {
		case types.DataTypeFloat:
			return types.NewFloatValue(lv.GetAsFloat() + rv.GetAsFloat()), nil
		case types.DataTypeInteger:
			return types.NewIntegerValue(lv.GetAsInt() + rv.GetAsInt()), nil
		default:
			return types.NewStringValue(lv.GetAsString() + rv.GetAsString()), nil
		}

	case frontend.OperatorMinus:
		if lv.Typ == types.DataTypeFloat {
			return types.NewFloatValue(lv.GetAsFloat() - rv.GetAsFloat()), nil
		}
		return types.NewIntegerValue(lv.GetAsInt() - rv.GetAsInt()), nil

	case frontend.OperatorAsterisk:
		if lv.Typ == types.DataTypeFloat {
			return types.NewFloatValue(lv.GetAsFloat() * rv.GetAsFloat()), nil
		}
		return types.NewIntegerValue(lv.GetAsInt() * rv.GetAsInt()), nil

	case frontend.OperatorSlash:
		if lv.Typ == types.DataTypeFloat {
			if rv.GetAsFloat() == 0 {
				return nil, fmt.Errorf("invalid divisor in division operation: cannot divide by zero")
			}
			return types.NewFloatValue(lv.GetAsFloat() / rv.GetAsFloat()), nil
		}
		if rv.GetAsInt() == 0 {
			return nil, fmt.Errorf("invalid divisor in division operation: cannot divide by zero")
		}
		return types.NewIntegerValue(lv.GetAsInt() / rv.GetAsInt()), nil

	case frontend.OperatorPercent:
		if rv.GetAsInt() == 0 {
			return nil, fmt.Errorf("invalid divisor in modulo operation: cannot modulo by zero")
		}
		return types.NewIntegerValue(lv.GetAsInt() % rv.GetAsInt()), nil

	case frontend.OperatorAndAnd:
		return types.NewBooleanValue(lv.GetAsBoolean() && rv.GetAsBoolean()), nil

	case frontend.OperatorOrOr:
		return types.NewBooleanValue(lv.GetAsBoolean() || rv.GetAsBoolean()), nil
	}

	panic(fmt.Sprintf("programming error: unexpected operator %s in binary operator expression", e.Op))
}

func evaluateUnaryOp(e *binder.BoundUnaryOp, row []*types.DataValue) (*types.DataValue, error) {
	v, err := evaluateBoundExpr(e.Expr, row)
	if err != nil {
		return nil, err
	}
	if v.IsNull {
		return types.NewNullValue(), nil
	}

	switch e.Op {
	case frontend.OperatorMinus:
		if v.Typ == types.DataTypeFloat {
			return types.NewFloatValue(-v.GetAsFloat()), nil
		}
		return types.NewIntegerValue(-v.GetAsInt()), nil

	case frontend.OperatorExclamation:
		return types.NewBooleanValue(!v.GetAsBoolean()), nil
	}

	panic(fmt.Sprintf("programming error: unexpected operator %s in unary operator expression", e.Op))
}

// evaluateTypeCast casts the inner value to the target type.
// Supported casts: same type (no-op), integer <-> float, and anything to
// string. NULL casts to NULL of any type.
func evaluateTypeCast(e *binder.BoundTypeCast, row []*types.DataValue) (*types.DataValue, error) {
	v, err := evaluateBoundExpr(e.Expr, row)
	if err != nil {
		return nil, err
	}
	if v.IsNull {
		return types.NewNullValue(), nil
	}

	if v.Typ == e.Target {
		return v, nil
	}

	switch e.Target {
	case types.DataTypeInteger:
		if v.Typ == types.DataTypeFloat {
			return types.NewIntegerValue(int32(v.GetAsFloat())), nil
		}

	case types.DataTypeFloat:
		if v.Typ == types.DataTypeInteger {
			return types.NewFloatValue(float64(v.GetAsInt())), nil
		}

	case types.DataTypeString:
		switch v.Typ {
		case types.DataTypeBoolean:
			return types.NewStringValue(strconv.FormatBool(v.GetAsBoolean())), nil
		case types.DataTypeInteger:
			return types.NewStringValue(strconv.FormatInt(int64(v.GetAsInt()), 10)), nil
		case types.DataTypeFloat:
			return types.NewStringValue(strconv.FormatFloat(v.GetAsFloat(), 'g', -1, 64)), nil
		}
	}

	return nil, fmt.Errorf("invalid cast: cannot cast %s to %s", v.Typ, e.Target)
}
