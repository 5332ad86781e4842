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

import "github.com/frostlightdb/frostlight/pkg/types"

// Result denotes the result of the execution of a query plan
type Result interface {
	HasError() bool

	GetError() error
}

// CreateTableResult is the result of the create table operation
type CreateTableResult struct {
	TableName string
	Err       error
}

func (ctr *CreateTableResult) HasError() bool {
	return ctr.Err != nil
}

func (ctr *CreateTableResult) GetError() error {
	return ctr.Err
}

var _ Result = (*CreateTableResult)(nil)

// DropTableResult is the result of the drop table operation
type DropTableResult struct {
	TableName string
	Err       error
}

func (dtr *DropTableResult) HasError() bool {
	return dtr.Err != nil
}

func (dtr *DropTableResult) GetError() error {
	return dtr.Err
}

var _ Result = (*DropTableResult)(nil)

// InsertResult is the result of the insert operation
type InsertResult struct {
	RowsInserted int
	Err          error
}

func (ir *InsertResult) HasError() bool {
	return ir.Err != nil
}

func (ir *InsertResult) GetError() error {
	return ir.Err
}

var _ Result = (*InsertResult)(nil)

// DeleteResult is the result of the delete operation
type DeleteResult struct {
	RowsDeleted uint64
	Err         error
}

func (dr *DeleteResult) HasError() bool {
	return dr.Err != nil
}

func (dr *DeleteResult) GetError() error {
	return dr.Err
}

var _ Result = (*DeleteResult)(nil)

// QueryResult is the result of the select operation
type QueryResult struct {
	Columns []string
	Rows    [][]*types.DataValue
	Err     error
}

func (qr *QueryResult) HasError() bool {
	return qr.Err != nil
}

func (qr *QueryResult) GetError() error {
	return qr.Err
}

var _ Result = (*QueryResult)(nil)

// TxnResult is the result of a begin/commit/rollback statement
type TxnResult struct {
	Err error
}

func (tr *TxnResult) HasError() bool {
	return tr.Err != nil
}

func (tr *TxnResult) GetError() error {
	return tr.Err
}

var _ Result = (*TxnResult)(nil)
