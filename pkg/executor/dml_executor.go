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
	"context"
	"fmt"

	"github.com/frostlightdb/frostlight/pkg/binder"
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/chunk"
	"github.com/frostlightdb/frostlight/pkg/storage"
	"github.com/frostlightdb/frostlight/pkg/types"
	log "github.com/sirupsen/logrus"
)

// InsertExecutor is the executor for the insert query.
// It evaluates the bound value rows into a single data chunk and appends
// it through a read-write transaction.
type InsertExecutor struct {
	storage storage.Storage
	plan    *InsertPlanNode
}

var _ Executor = (*InsertExecutor)(nil)

// Execute executes the insert request
func (ex *InsertExecutor) Execute(ctx context.Context) Result {
	log.WithFields(log.Fields{"table": ex.plan.Table.Name, "rows": len(ex.plan.Rows)}).Info("executor::dml_executor::InsertExecutor.Execute; start;")
	res := &InsertResult{}

	tbl, err := ex.storage.GetTable(ex.plan.Table.ID)
	if err != nil {
		res.Err = err
		return res
	}

	builder := chunk.NewBuilder(len(ex.plan.Table.Columns))
	for _, boundRow := range ex.plan.Rows {
		row := make([]*types.DataValue, len(boundRow))
		for i, be := range boundRow {
			v, err := evaluateBoundExpr(be, nil)
			if err != nil {
				res.Err = err
				return res
			}

			row[i], err = coerceForColumn(v, ex.plan.Table.Columns[i].Desc)
			if err != nil {
				res.Err = err
				return res
			}
		}

		if err := builder.AppendRow(row...); err != nil {
			res.Err = err
			return res
		}
	}

	txn, err := tbl.Write(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	defer txn.Close()

	if err := txn.Append(ctx, builder.Finish()); err != nil {
		res.Err = err
		return res
	}

	res.RowsInserted = len(ex.plan.Rows)
	return res
}

// DeleteExecutor is the executor for the delete query.
// It tombstones every live row matching the predicate through an update
// transaction. Each row deletion is atomic on its own; a failure midway
// leaves the earlier deletions applied.
type DeleteExecutor struct {
	storage storage.Storage
	plan    *DeletePlanNode
}

var _ Executor = (*DeleteExecutor)(nil)

// Execute executes the delete request
func (ex *DeleteExecutor) Execute(ctx context.Context) Result {
	log.WithFields(log.Fields{"table": ex.plan.Table.Name}).Info("executor::dml_executor::DeleteExecutor.Execute; start;")
	res := &DeleteResult{}

	tbl, err := ex.storage.GetTable(ex.plan.Table.ID)
	if err != nil {
		res.Err = err
		return res
	}

	txn, err := tbl.Update(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	defer txn.Close()

	chunks, err := txn.GetAllChunks(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	deleted, err := txn.GetAllDeletedRows(ctx)
	if err != nil {
		res.Err = err
		return res
	}

	var rowID uint64
	for _, c := range chunks {
		for i := 0; i < c.NumRows(); i++ {
			id := rowID
			rowID++

			if deleted.Contains(id) {
				continue
			}

			matched := true
			if ex.plan.Predicate != nil {
				matched, err = evaluatePredicate(ex.plan.Predicate, c.Row(i))
				if err != nil {
					res.Err = err
					return res
				}
			}
			if !matched {
				continue
			}

			if err := txn.Delete(ctx, id); err != nil {
				res.Err = err
				return res
			}
			res.RowsDeleted++
		}
	}

	return res
}

// evaluatePredicate evaluates a WHERE predicate against a row.
// A NULL result filters the row out, the same as false.
func evaluatePredicate(pred *binder.BoundExpr, row []*types.DataValue) (bool, error) {
	v, err := evaluateBoundExpr(pred, row)
	if err != nil {
		return false, err
	}
	if v.IsNull {
		return false, nil
	}
	if v.Typ != types.DataTypeBoolean {
		return false, fmt.Errorf("predicate must evaluate to a boolean, found %s", v.Typ)
	}

	return v.GetAsBoolean(), nil
}

// coerceForColumn checks a value against the target column descriptor.
// Integer values widen to float for float columns; NULL requires the
// column to be nullable.
func coerceForColumn(v *types.DataValue, desc catalog.ColumnDesc) (*types.DataValue, error) {
	if v.IsNull {
		if !desc.Nullable {
			return nil, fmt.Errorf("column %s is not nullable", desc.Name)
		}
		return v, nil
	}

	if v.Typ == desc.Typ {
		return v, nil
	}
	if v.Typ == types.DataTypeInteger && desc.Typ == types.DataTypeFloat {
		return types.NewFloatValue(float64(v.GetAsInt())), nil
	}

	return nil, fmt.Errorf("type mismatch: column %s expects %s, found %s", desc.Name, desc.Typ, v.Typ)
}
