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

package storage

import (
	"context"
	"testing"

	icommon "github.com/frostlightdb/frostlight/internal/common"
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/test"
	"github.com/stretchr/testify/assert"
)

func TestAppendPreservesChunkOrder(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	txn, err := tbl.Write(ctx)
	assert.Nil(t, err, "Unexpected error in starting the write txn")

	a := test.NewTestChunk([]int32{1, 2}, []string{"a", "b"})
	b := test.NewTestChunk([]int32{3}, []string{"c"})
	assert.Nil(t, txn.Append(ctx, a), "Unexpected error in appending chunk a")
	assert.Nil(t, txn.Append(ctx, b), "Unexpected error in appending chunk b")

	chunks, err := txn.GetAllChunks(ctx)
	assert.Nil(t, err, "Unexpected error in getting the chunks")
	assert.Equal(t, 2, len(chunks), "Unexpected number of chunks")
	assert.Equal(t, a, chunks[0], "Chunks should be returned in append order")
	assert.Equal(t, b, chunks[1], "Chunks should be returned in append order")

	assert.Nil(t, txn.Close(), "Unexpected error in closing the txn")
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	wtxn, err := tbl.Write(ctx)
	assert.Nil(t, err, "Unexpected error in starting the write txn")
	assert.Nil(t, wtxn.Append(ctx, test.NewTestChunk([]int32{1, 2, 3}, []string{"a", "b", "c"})), "Unexpected error in appending")
	wtxn.Close()

	utxn, err := tbl.Update(ctx)
	assert.Nil(t, err, "Unexpected error in starting the update txn")
	assert.Nil(t, utxn.Delete(ctx, 1), "Unexpected error in deleting row 1")
	assert.Nil(t, utxn.Delete(ctx, 1), "Re-deleting a row should be a silent no-op")

	deleted, err := utxn.GetAllDeletedRows(ctx)
	assert.Nil(t, err, "Unexpected error in getting the tombstones")
	assert.Equal(t, uint64(1), deleted.GetCardinality(), "Unexpected number of tombstones")
	assert.True(t, deleted.Contains(1), "Expected row 1 to be tombstoned")

	utxn.Close()
}

func TestDeleteNeverAppendedRow(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	utxn, err := tbl.Update(ctx)
	assert.Nil(t, err, "Unexpected error in starting the update txn")
	defer utxn.Close()

	err = utxn.Delete(ctx, 0)
	assert.NotNil(t, err, "Expected an error in deleting a never appended row")
	_, ok := err.(icommon.NotFoundError)
	assert.True(t, ok, "Expected a not found error")

	deleted, err := utxn.GetAllDeletedRows(ctx)
	assert.Nil(t, err, "Unexpected error in getting the tombstones")
	assert.True(t, deleted.IsEmpty(), "A failed delete should not leave a tombstone")
}

func TestColumnDescsUnknownColumnNoPartialResult(t *testing.T) {
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	descs, err := tbl.ColumnDescs([]catalog.ColumnId{0, 1})
	assert.Nil(t, err, "Unexpected error in getting the column descs")
	assert.Equal(t, 2, len(descs), "Unexpected number of column descs")
	assert.Equal(t, "id", descs[0].Name, "Descs should be in requested order")
	assert.Equal(t, "name", descs[1].Name, "Descs should be in requested order")

	descs, err = tbl.ColumnDescs([]catalog.ColumnId{0, 99})
	assert.NotNil(t, err, "Expected an error for an unknown column id")
	_, ok := err.(icommon.UnknownColumnError)
	assert.True(t, ok, "Expected an unknown column error")
	assert.Nil(t, descs, "Expected no partial result")
}

func TestReadTxnRejectsNothingAndWriteGuards(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	rtxn, err := tbl.Read(ctx)
	assert.Nil(t, err, "Unexpected error in starting the read txn")
	assert.Equal(t, TxnModeReadOnly, rtxn.Mode(), "Unexpected txn mode")

	// the read session exposes no mutating methods; the runtime guard
	// still protects callers that assert to the concrete session.
	mt := rtxn.(*memTransaction)
	err = mt.Append(ctx, test.NewTestChunk([]int32{1}, []string{"a"}))
	assert.NotNil(t, err, "Expected an error for a mutating call on a read-only txn")
	_, ok := err.(icommon.InvalidTxnModeError)
	assert.True(t, ok, "Expected an invalid txn mode error")

	chunks, err := rtxn.GetAllChunks(ctx)
	assert.Nil(t, err, "Unexpected error in getting the chunks")
	assert.Equal(t, 0, len(chunks), "The failed append should not have mutated the table")

	rtxn.Close()
}

func TestEndedTxnRejectsAllOperations(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	txn, err := tbl.Write(ctx)
	assert.Nil(t, err, "Unexpected error in starting the write txn")
	assert.Nil(t, txn.Close(), "Unexpected error in closing the txn")

	_, err = txn.GetAllChunks(ctx)
	_, ok := err.(icommon.EndedTxnError)
	assert.True(t, ok, "Expected an ended txn error for a read")

	err = txn.Append(ctx, test.NewTestChunk([]int32{1}, []string{"a"}))
	_, ok = err.(icommon.EndedTxnError)
	assert.True(t, ok, "Expected an ended txn error for a mutation")

	err = txn.Close()
	_, ok = err.(icommon.EndedTxnError)
	assert.True(t, ok, "Expected an ended txn error for a double close")
}

func TestCancelledContextFailsAcquisition(t *testing.T) {
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	ctx, cancel := context.WithCancel(context.Background())
	txn, err := tbl.Write(ctx)
	assert.Nil(t, err, "Unexpected error in starting the write txn")
	defer txn.Close()

	cancel()

	err = txn.Append(ctx, test.NewTestChunk([]int32{1}, []string{"a"}))
	assert.NotNil(t, err, "Expected an error for an append with a cancelled context")
	_, ok := err.(icommon.LockAcquisitionError)
	assert.True(t, ok, "Expected a lock acquisition error")

	_, err = tbl.Read(ctx)
	_, ok = err.(icommon.LockAcquisitionError)
	assert.True(t, ok, "Expected a lock acquisition error when starting a txn")
}

func TestMutationsSurviveClose(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	wtxn, err := tbl.Write(ctx)
	assert.Nil(t, err, "Unexpected error in starting the write txn")
	assert.Nil(t, wtxn.Append(ctx, test.NewTestChunk([]int32{1, 2}, []string{"a", "b"})), "Unexpected error in appending")
	wtxn.Close()

	utxn, err := tbl.Update(ctx)
	assert.Nil(t, err, "Unexpected error in starting the update txn")
	assert.Nil(t, utxn.Delete(ctx, 0), "Unexpected error in deleting row 0")
	utxn.Close()

	rtxn, err := tbl.Read(ctx)
	assert.Nil(t, err, "Unexpected error in starting the read txn")
	defer rtxn.Close()

	chunks, err := rtxn.GetAllChunks(ctx)
	assert.Nil(t, err, "Unexpected error in getting the chunks")
	assert.Equal(t, 1, len(chunks), "Appends should survive the closing of their txn")

	deleted, err := rtxn.GetAllDeletedRows(ctx)
	assert.Nil(t, err, "Unexpected error in getting the tombstones")
	assert.True(t, deleted.Contains(0), "Deletes should survive the closing of their txn")
}

// Two chunks, one tombstone, scan the rest.
func TestEndToEndScan(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemTable(test.TestTableID, test.TestColumns)

	wtxn, err := tbl.Write(ctx)
	assert.Nil(t, err, "Unexpected error in starting the write txn")
	assert.Nil(t, wtxn.Append(ctx, test.NewTestChunk([]int32{1, 2}, []string{"a", "b"})), "Unexpected error in appending chunk A")
	assert.Nil(t, wtxn.Append(ctx, test.NewTestChunk([]int32{3}, []string{"c"})), "Unexpected error in appending chunk B")
	wtxn.Close()

	utxn, err := tbl.Update(ctx)
	assert.Nil(t, err, "Unexpected error in starting the update txn")
	assert.Nil(t, utxn.Delete(ctx, 1), "Unexpected error in deleting row 1")
	utxn.Close()

	rtxn, err := tbl.Read(ctx)
	assert.Nil(t, err, "Unexpected error in starting the read txn")
	defer rtxn.Close()

	chunks, err := rtxn.GetAllChunks(ctx)
	assert.Nil(t, err, "Unexpected error in getting the chunks")
	deleted, err := rtxn.GetAllDeletedRows(ctx)
	assert.Nil(t, err, "Unexpected error in getting the tombstones")

	var ids []int32
	var names []string
	var rowID uint64
	for _, c := range chunks {
		for i := 0; i < c.NumRows(); i++ {
			id := rowID
			rowID++
			if deleted.Contains(id) {
				continue
			}
			ids = append(ids, c.Value(i, 0).GetAsInt())
			names = append(names, c.Value(i, 1).GetAsString())
		}
	}

	assert.Equal(t, []int32{1, 3}, ids, "Unexpected live rows")
	assert.Equal(t, []string{"a", "c"}, names, "Unexpected live rows")
}
