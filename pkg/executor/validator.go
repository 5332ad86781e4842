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

	"github.com/frostlightdb/frostlight/pkg/frontend"
)

// validator validates the parsed AST for inconsistencies
type validator interface {
	validate() error
}

var _ validator = (*emptyValidator)(nil)
var _ validator = (*createTableValidator)(nil)
var _ validator = (*insertStatementValidator)(nil)

// newValidator creates a new validator for the parsed statement
func newValidator(ast frontend.Statement) validator {
	switch st := ast.(type) {
	case *frontend.CreateTableStatement:
		return &createTableValidator{ast: st}
	case *frontend.InsertStatement:
		return &insertStatementValidator{ast: st}
	default:
		return &emptyValidator{ast: ast}
	}
}

// emptyValidator is a trivial validator that doesn't validate anything
// useful for statements such as begin, commit and rollback transactions.
type emptyValidator struct {
	ast frontend.Statement
}

func (ev *emptyValidator) validate() error {
	return nil
}

// createTableValidator validates a create table statement
type createTableValidator struct {
	ast *frontend.CreateTableStatement
}

// validates that the statement has at least one column, no duplicate
// column names and at most one primary key column.
func (ctv *createTableValidator) validate() error {
	cols := ctv.ast.Spec.Columns
	if len(cols) == 0 {
		return fmt.Errorf("table %s must have at least one column", ctv.ast.Spec.TableName)
	}

	seen := make(map[string]bool)
	primaryKeys := 0
	for _, col := range cols {
		if seen[col.Name] {
			return fmt.Errorf("duplicate column %s in table %s", col.Name, ctv.ast.Spec.TableName)
		}
		seen[col.Name] = true

		if col.PrimaryKey {
			primaryKeys++
		}
	}

	if primaryKeys > 1 {
		return fmt.Errorf("table %s has %d primary key columns, at most one is allowed", ctv.ast.Spec.TableName, primaryKeys)
	}

	return nil
}

// insertStatementValidator validates an insert statement
type insertStatementValidator struct {
	ast *frontend.InsertStatement
}

// validates that every value row has the same arity and that the column
// list, if given, has no duplicates and matches that arity.
func (isv *insertStatementValidator) validate() error {
	if len(isv.ast.Rows) == 0 {
		return fmt.Errorf("insert statement must have at least one value row")
	}

	seen := make(map[string]bool)
	for _, name := range isv.ast.Columns {
		if seen[name] {
			return fmt.Errorf("duplicate column %s in insert statement", name)
		}
		seen[name] = true
	}

	arity := len(isv.ast.Rows[0])
	if len(isv.ast.Columns) > 0 && len(isv.ast.Columns) != arity {
		return fmt.Errorf("insert statement has %d columns but rows have %d values", len(isv.ast.Columns), arity)
	}
	for _, row := range isv.ast.Rows {
		if len(row) != arity {
			return fmt.Errorf("insert rows have inconsistent arity: found %d and %d", arity, len(row))
		}
	}

	return nil
}
