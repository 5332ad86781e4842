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

package frontend

import "github.com/frostlightdb/frostlight/pkg/types"

var (
	_ Expression = (*BinaryOpExpression)(nil)
	_ Expression = (*GroupingExpression)(nil)
	_ Expression = (*ValueExpression)(nil)
	_ Expression = (*UnaryOpExpression)(nil)
	_ Expression = (*IdentifierExpression)(nil)
	_ Expression = (*TypeCastExpression)(nil)
	_ Expression = (*SelectAllExpression)(nil)
)

// BinaryOpExpression represents a binary operation
type BinaryOpExpression struct {
	Op Operator

	L, R Expression
}

func (boe *BinaryOpExpression) expression() {}

// GroupingExpression represents a parenthesized expression
type GroupingExpression struct {
	InExp Expression
}

func (ge *GroupingExpression) expression() {}

// UnaryOpExpression represents a unary operation
type UnaryOpExpression struct {
	Op Operator

	Exp Expression
}

func (uoe *UnaryOpExpression) expression() {}

// ValueExpression represents a simple literal value
type ValueExpression struct {
	Val *types.DataValue
}

func (ve *ValueExpression) expression() {}

// IdentifierExpression represents a simple identifier
type IdentifierExpression struct {
	Identifier string
}

func (ie *IdentifierExpression) expression() {}

// TypeCastExpression represents a CAST(expr AS type) expression
type TypeCastExpression struct {
	Typ types.DataType

	Exp Expression
}

func (tce *TypeCastExpression) expression() {}

// SelectAllExpression represents selection of all of the columns in the query
type SelectAllExpression struct{}

func (sae *SelectAllExpression) expression() {}
