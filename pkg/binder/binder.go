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

package binder

import (
	"fmt"

	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/types"

	icommon "github.com/frostlightdb/frostlight/internal/common"
)

// Binder resolves parsed expressions against a table schema and type
// checks them. A nil table binds only table-less expressions, in which
// case any identifier reference is an error.
type Binder struct {
	table *catalog.TableInfo
	err   error
}

// NewBinder creates a binder for the given table schema.
func NewBinder(table *catalog.TableInfo) *Binder {
	return &Binder{
		table: table,
	}
}

// Bind resolves and type checks the given expression
func (b *Binder) Bind(expr frontend.Expression) (*BoundExpr, error) {
	if b.err != nil {
		return nil, b.err
	}

	switch e := expr.(type) {
	case *frontend.ValueExpression:
		return &BoundExpr{
			Kind:       &BoundConstant{Value: e.Val},
			ReturnType: e.Val.DataType(),
		}, nil

	case *frontend.GroupingExpression:
		return b.Bind(e.InExp)

	case *frontend.IdentifierExpression:
		return b.bindColumnRef(e)

	case *frontend.BinaryOpExpression:
		return b.bindBinaryOp(e)

	case *frontend.UnaryOpExpression:
		return b.bindUnaryOp(e)

	case *frontend.TypeCastExpression:
		return b.bindTypeCast(e)

	case *frontend.SelectAllExpression:
		b.err = fmt.Errorf("binder::binder::Bind: '*' is only valid as a top level selection")
		return nil, b.err
	}

	panic("programming error: unexhaustive switch case in Bind")
}

//
// Internal methods
//

func (b *Binder) bindColumnRef(e *frontend.IdentifierExpression) (*BoundExpr, error) {
	if b.table == nil {
		b.err = icommon.NewUnknownColumnError(fmt.Sprintf("unknown column %s", e.Identifier))
		return nil, b.err
	}

	col, ok := b.table.ColumnByName(e.Identifier)
	if !ok {
		b.err = icommon.NewUnknownColumnError(fmt.Sprintf("unknown column %s in table %s", e.Identifier, b.table.Name))
		return nil, b.err
	}

	// column ids are assigned in declaration order so the id doubles
	// as the position of the column in a row.
	typ := col.Desc.Typ
	return &BoundExpr{
		Kind: &BoundColumnRef{
			ColumnID: col.ID,
			Index:    int(col.ID),
			Desc:     col.Desc,
		},
		ReturnType: &typ,
	}, nil
}

func (b *Binder) bindBinaryOp(e *frontend.BinaryOpExpression) (*BoundExpr, error) {
	left, err := b.Bind(e.L)
	if err != nil {
		return nil, err
	}
	right, err := b.Bind(e.R)
	if err != nil {
		return nil, err
	}

	kind := &BoundBinaryOp{Op: e.Op, Left: left, Right: right}

	// a NULL operand makes the whole expression NULL
	if left.ReturnType == nil || right.ReturnType == nil {
		return &BoundExpr{Kind: kind}, nil
	}

	lt := *left.ReturnType
	rt := *right.ReturnType
	if lt != rt {
		b.err = fmt.Errorf("type mismatch: operands of %s must have the same type, found %s and %s", e.Op, lt, rt)
		return nil, b.err
	}

	boolean := types.DataTypeBoolean

	switch e.Op {
	case frontend.OperatorEqual, frontend.OperatorNotEqual:
		return &BoundExpr{Kind: kind, ReturnType: &boolean}, nil

	case frontend.OperatorGreaterThan, frontend.OperatorGreaterThanEqualTo,
		frontend.OperatorLessThan, frontend.OperatorLessThanEqualTo:
		if !types.OperatorComparisonOperandTypes[lt] {
			b.err = fmt.Errorf("invalid type: binary operator %s cannot be used with operand of type %s", e.Op, lt)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &boolean}, nil

	case frontend.OperatorAndAnd, frontend.OperatorOrOr:
		if !types.OperatorLogicalOperandTypes[lt] {
			b.err = fmt.Errorf("invalid type: binary operator %s cannot be used with operand of type %s", e.Op, lt)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &boolean}, nil

	case frontend.OperatorPlus:
		if !types.OperatorPlusOperandTypes[lt] {
			b.err = fmt.Errorf("invalid type: binary operator %s cannot be used with operand of type %s", e.Op, lt)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &lt}, nil

	case frontend.OperatorMinus:
		if !types.OperatorMinusOperandTypes[lt] {
			b.err = fmt.Errorf("invalid type: binary operator %s cannot be used with operand of type %s", e.Op, lt)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &lt}, nil

	case frontend.OperatorAsterisk:
		if !types.OperatorAsteriskOperandTypes[lt] {
			b.err = fmt.Errorf("invalid type: binary operator %s cannot be used with operand of type %s", e.Op, lt)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &lt}, nil

	case frontend.OperatorSlash:
		if !types.OperatorSlashOperandTypes[lt] {
			b.err = fmt.Errorf("invalid type: binary operator %s cannot be used with operand of type %s", e.Op, lt)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &lt}, nil

	case frontend.OperatorPercent:
		if !types.OperatorPercentOperandTypes[lt] {
			b.err = fmt.Errorf("invalid type: binary operator %s cannot be used with operand of type %s", e.Op, lt)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &lt}, nil
	}

	b.err = fmt.Errorf("binder::binder::bindBinaryOp: unsupported binary operator %s", e.Op)
	return nil, b.err
}

func (b *Binder) bindUnaryOp(e *frontend.UnaryOpExpression) (*BoundExpr, error) {
	in, err := b.Bind(e.Exp)
	if err != nil {
		return nil, err
	}

	kind := &BoundUnaryOp{Op: e.Op, Expr: in}

	if in.ReturnType == nil {
		return &BoundExpr{Kind: kind}, nil
	}

	it := *in.ReturnType

	switch e.Op {
	case frontend.OperatorMinus:
		if it != types.DataTypeInteger && it != types.DataTypeFloat {
			b.err = fmt.Errorf("invalid type: unary operator %s cannot be used with operand of type %s", e.Op, it)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &it}, nil

	case frontend.OperatorExclamation:
		if it != types.DataTypeBoolean {
			b.err = fmt.Errorf("invalid type: unary operator %s cannot be used with operand of type %s", e.Op, it)
			return nil, b.err
		}
		return &BoundExpr{Kind: kind, ReturnType: &it}, nil
	}

	b.err = fmt.Errorf("binder::binder::bindUnaryOp: unsupported unary operator %s", e.Op)
	return nil, b.err
}

func (b *Binder) bindTypeCast(e *frontend.TypeCastExpression) (*BoundExpr, error) {
	in, err := b.Bind(e.Exp)
	if err != nil {
		return nil, err
	}

	target := e.Typ
	return &BoundExpr{
		Kind:       &BoundTypeCast{Target: target, Expr: in},
		ReturnType: &target,
	}, nil
}
