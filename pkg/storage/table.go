package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/roaring64"
	icommon "github.com/frostlightdb/frostlight/internal/common"
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/chunk"
)

// memTable is a table in the in-memory engine. The value can be freely
// copied; it only serves as a reference to the table's shared state.
type memTable struct {
	id    catalog.TableRefId
	inner *tableInner
}

var _ Table = memTable{}

// tableInner is the table's private state: the append-ordered chunk
// sequence, the tombstone set and the column descriptor map. The three are
// always mutated together under the mutex so that a reader never observes
// them half updated.
type tableInner struct {
	mu sync.RWMutex

	chunks      []*chunk.DataChunk
	deletedRows *roaring64.Bitmap
	columns     map[catalog.ColumnId]catalog.ColumnDesc

	// rowCount is the total number of rows appended so far. Row
	// identifiers are positions in the append-ordered concatenation of
	// all chunks, so rowCount is also the next row id to be handed out.
	rowCount uint64
}

func newTableInner(columns []catalog.ColumnCatalog) *tableInner {
	cols := make(map[catalog.ColumnId]catalog.ColumnDesc)
	for _, col := range columns {
		cols[col.ID] = col.Desc
	}

	return &tableInner{
		deletedRows: roaring64.New(),
		columns:     cols,
	}
}

// append pushes the chunk onto the end of the chunk sequence.
// The chunk contents are not validated; that is the binder's and the
// executor's task.
func (inner *tableInner) append(c *chunk.DataChunk) error {
	inner.mu.Lock()
	defer inner.mu.Unlock()

	inner.chunks = append(inner.chunks, c)
	inner.rowCount += uint64(c.NumRows())
	return nil
}

// delete inserts the row id into the tombstone set. Idempotent.
func (inner *tableInner) delete(rowID uint64) error {
	inner.mu.Lock()
	defer inner.mu.Unlock()

	if rowID >= inner.rowCount {
		return icommon.NewNotFoundError(fmt.Sprintf("row %d was never appended; table has %d rows", rowID, inner.rowCount))
	}

	inner.deletedRows.Add(rowID)
	return nil
}

// getAllChunks returns the full chunk sequence in append order.
// The returned slice is a snapshot; the chunks are shared, not copied.
func (inner *tableInner) getAllChunks() []*chunk.DataChunk {
	inner.mu.RLock()
	defer inner.mu.RUnlock()

	chunks := make([]*chunk.DataChunk, len(inner.chunks))
	copy(chunks, inner.chunks)
	return chunks
}

// getAllDeletedRows returns the tombstone set as of the call.
func (inner *tableInner) getAllDeletedRows() *roaring64.Bitmap {
	inner.mu.RLock()
	defer inner.mu.RUnlock()

	return inner.deletedRows.Clone()
}

func (inner *tableInner) columnDescs(ids []catalog.ColumnId) ([]catalog.ColumnDesc, error) {
	descs := make([]catalog.ColumnDesc, 0, len(ids))
	for _, id := range ids {
		desc, ok := inner.columns[id]
		if !ok {
			return nil, icommon.NewUnknownColumnError(fmt.Sprintf("unknown column %d", id))
		}
		descs = append(descs, desc)
	}

	return descs, nil
}

func (t memTable) TableID() catalog.TableRefId {
	return t.id
}

func (t memTable) ColumnDescs(ids []catalog.ColumnId) ([]catalog.ColumnDesc, error) {
	t.inner.mu.RLock()
	defer t.inner.mu.RUnlock()

	return t.inner.columnDescs(ids)
}

func (t memTable) Read(ctx context.Context) (ReadTransaction, error) {
	return startTransaction(ctx, t, TxnModeReadOnly)
}

func (t memTable) Write(ctx context.Context) (Transaction, error) {
	return startTransaction(ctx, t, TxnModeReadWrite)
}

func (t memTable) Update(ctx context.Context) (Transaction, error) {
	return startTransaction(ctx, t, TxnModeUpdate)
}

// newMemTable creates a new in-memory table seeded from the given column
// catalog, with an empty chunk sequence and an empty tombstone set.
func newMemTable(id catalog.TableRefId, columns []catalog.ColumnCatalog) memTable {
	return memTable{
		id:    id,
		inner: newTableInner(columns),
	}
}

// NewMemTable creates a standalone in-memory table. Most callers go through
// Storage.CreateTable instead; this is for embedding the table directly.
func NewMemTable(id catalog.TableRefId, columns []catalog.ColumnCatalog) Table {
	return newMemTable(id, columns)
}
