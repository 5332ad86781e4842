package storage

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/roaring64"
	icommon "github.com/frostlightdb/frostlight/internal/common"
	"github.com/frostlightdb/frostlight/pkg/chunk"
	log "github.com/sirupsen/logrus"
)

// TxnMode is the access mode a session was started with.
type TxnMode uint64

const (
	TxnModeReadOnly TxnMode = iota
	TxnModeReadWrite
	TxnModeUpdate
)

func (m TxnMode) String() string {
	switch m {
	case TxnModeReadOnly:
		return "read"

	case TxnModeReadWrite:
		return "write"

	case TxnModeUpdate:
		return "update"
	}

	panic("programming error: unexpected txn mode in String() of TxnMode")
}

// nextTxnID hands out session ids. Ids are process wide and only used for
// diagnostics; they carry no versioning semantics.
var nextTxnID uint64

// memTransaction is a session on an in-memory table.
//
// Locking is per call, not per session lifetime: each operation acquires
// the table's section for its own duration only, so two mutating calls of
// the same session are not atomic as a pair relative to other sessions.
// A single session is not thread safe; operations on it should be called
// sequentially.
type memTransaction struct {
	id    uint64
	mode  TxnMode
	table memTable

	ended bool
}

var _ Transaction = (*memTransaction)(nil)

// startTransaction starts a new session on the given table.
func startTransaction(ctx context.Context, table memTable, mode TxnMode) (*memTransaction, error) {
	if err := acquirable(ctx); err != nil {
		return nil, err
	}

	t := &memTransaction{
		id:    atomic.AddUint64(&nextTxnID, 1),
		mode:  mode,
		table: table,
	}

	log.WithFields(log.Fields{"id": t.id, "table": table.id, "mode": mode.String()}).Debug("storage::transaction::startTransaction; started session")
	return t, nil
}

func (t *memTransaction) ID() uint64 {
	return t.id
}

func (t *memTransaction) Mode() TxnMode {
	return t.mode
}

func (t *memTransaction) Append(ctx context.Context, c *chunk.DataChunk) error {
	if err := t.usable(ctx, true); err != nil {
		return err
	}

	log.WithFields(log.Fields{"id": t.id, "table": t.table.id, "rows": c.NumRows()}).Debug("storage::transaction::Append; started")
	return t.table.inner.append(c)
}

func (t *memTransaction) Delete(ctx context.Context, rowID uint64) error {
	if err := t.usable(ctx, true); err != nil {
		return err
	}

	log.WithFields(log.Fields{"id": t.id, "table": t.table.id, "row": rowID}).Debug("storage::transaction::Delete; started")
	return t.table.inner.delete(rowID)
}

func (t *memTransaction) GetAllChunks(ctx context.Context) ([]*chunk.DataChunk, error) {
	if err := t.usable(ctx, false); err != nil {
		return nil, err
	}

	return t.table.inner.getAllChunks(), nil
}

func (t *memTransaction) GetAllDeletedRows(ctx context.Context) (*roaring64.Bitmap, error) {
	if err := t.usable(ctx, false); err != nil {
		return nil, err
	}

	return t.table.inner.getAllDeletedRows(), nil
}

// Close ends the session. Whatever mutations were applied through the
// session stay applied; there is no rollback.
func (t *memTransaction) Close() error {
	if t.ended {
		return icommon.NewEndedTxnError(fmt.Sprintf("txn %d has already ended", t.id))
	}

	t.ended = true
	log.WithFields(log.Fields{"id": t.id, "table": t.table.id}).Debug("storage::transaction::Close; session ended")
	return nil
}

// usable checks that an operation is legal on this session before it
// touches the table. Mutating calls on a read-only session must fail fast
// and must not mutate any state. This guard backs up the interface split
// between ReadTransaction and Transaction for callers that type assert to
// the concrete session.
func (t *memTransaction) usable(ctx context.Context, mutating bool) error {
	if t.ended {
		return icommon.NewEndedTxnError(fmt.Sprintf("txn %d has already ended", t.id))
	}
	if mutating && t.mode == TxnModeReadOnly {
		return icommon.NewInvalidTxnModeError(fmt.Sprintf("txn %d is read-only", t.id))
	}

	return acquirable(ctx)
}

// acquirable reports whether the table's section may be acquired on
// behalf of the given context. A context that is already done fails the
// acquisition; once acquisition starts there is no timeout and the caller
// may block until the section is available.
func acquirable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return icommon.NewLockAcquisitionError(fmt.Sprintf("could not acquire table section: %v", err))
	}

	return nil
}
