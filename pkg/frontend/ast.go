/**
 * Copyright 2020 The FrostlightDB Authors. All rights reserved.
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

/*
	This file contains the common defs and utilities of the AST
*/

// Statement denotes a parsed SQL statement
type Statement interface {
	statement()
}

// Expression denotes an expression which can be evaluated
type Expression interface {
	expression()
}

// Table denotes a single table source
type Table struct {
	Name  string
	Alias string
}

// SelectionItem denotes a single column of selection in a SELECT query.
// Can optionally have an Output name.
type SelectionItem struct {
	OutputName string
	Expr       Expression
}
