package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/roaring64"
	icommon "github.com/frostlightdb/frostlight/internal/common"
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/chunk"
	log "github.com/sirupsen/logrus"
)

// Storage is the set of tables backed by one storage engine.
type Storage interface {
	// CreateTable creates a new table seeded from the given column catalog.
	CreateTable(id catalog.TableRefId, columns []catalog.ColumnCatalog) (Table, error)

	// GetTable returns the table with the given id.
	GetTable(id catalog.TableRefId) (Table, error)

	// DropTable removes the table with the given id from the engine.
	// Readers still holding a handle to the table can keep using it;
	// dropping only unregisters the table from the engine.
	DropTable(id catalog.TableRefId) error
}

// Table is a handle to a single stored table. Handles are cheap: a handle
// only references the table's shared state, it never deep copies it.
//
// All three transaction constructors take a context for interface
// uniformity with asynchronous storage backends. The in-memory backend
// never blocks while starting a session.
type Table interface {
	// TableID returns the stable identity of the table.
	TableID() catalog.TableRefId

	// ColumnDescs returns the descriptor of each requested column id in
	// request order. It fails with an unknown column error as soon as any
	// requested id is absent; no partial result is returned.
	ColumnDescs(ids []catalog.ColumnId) ([]catalog.ColumnDesc, error)

	// Read starts a read-only session on the table.
	Read(ctx context.Context) (ReadTransaction, error)

	// Write starts a read-write session on the table.
	Write(ctx context.Context) (Transaction, error)

	// Update starts an update session on the table.
	Update(ctx context.Context) (Transaction, error)
}

// ReadTransaction is a session that can enumerate the table's state.
// A single session is not thread safe; operations on it should be
// called sequentially.
type ReadTransaction interface {
	// ID returns the session id. Only used for diagnostics.
	ID() uint64

	// Mode returns the access mode the session was started with.
	Mode() TxnMode

	// GetAllChunks returns the table's full chunk sequence in append order
	// as a snapshot at the moment of the call. The chunks themselves are
	// shared by reference, never copied.
	GetAllChunks(ctx context.Context) ([]*chunk.DataChunk, error)

	// GetAllDeletedRows returns the tombstone set as of the call.
	// Liveness filtering is the caller's job: a row is visible iff its
	// identifier is not in the returned set.
	GetAllDeletedRows(ctx context.Context) (*roaring64.Bitmap, error)

	// Close ends the session. Mutations already applied through the
	// session stay applied; closing only releases the session's claim
	// on the table.
	Close() error
}

// Transaction is a session that can also mutate the table.
type Transaction interface {
	ReadTransaction

	// Append pushes the chunk onto the end of the table's chunk sequence.
	// The chunk's rows become valid targets for Delete.
	Append(ctx context.Context, c *chunk.DataChunk) error

	// Delete marks the row with the given identifier as deleted.
	// Deleting an already-deleted row succeeds silently. Deleting a row
	// identifier that was never appended fails with a not found error.
	Delete(ctx context.Context, rowID uint64) error
}

// memStorage is the in-memory storage engine.
// Operations on it are thread safe using a RWMutex.
type memStorage struct {
	mu *sync.RWMutex

	tables map[catalog.TableRefId]memTable
}

var _ Storage = (*memStorage)(nil)

func (s *memStorage) CreateTable(id catalog.TableRefId, columns []catalog.ColumnCatalog) (Table, error) {
	log.WithFields(log.Fields{"id": id}).Debug("storage::storage::CreateTable; started")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; ok {
		return nil, icommon.NewAlreadyExistsError(fmt.Sprintf("table %d already exists in storage", id))
	}

	t := newMemTable(id, columns)
	s.tables[id] = t
	return t, nil
}

func (s *memStorage) GetTable(id catalog.TableRefId) (Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[id]
	if !ok {
		return nil, icommon.NewNotFoundError(fmt.Sprintf("table %d not found in storage", id))
	}

	return t, nil
}

func (s *memStorage) DropTable(id catalog.TableRefId) error {
	log.WithFields(log.Fields{"id": id}).Debug("storage::storage::DropTable; started")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; !ok {
		return icommon.NewNotFoundError(fmt.Sprintf("table %d not found in storage", id))
	}

	delete(s.tables, id)
	return nil
}

// NewInMemoryStorage creates a new empty in-memory storage engine.
func NewInMemoryStorage() Storage {
	return &memStorage{
		mu:     new(sync.RWMutex),
		tables: make(map[catalog.TableRefId]memTable),
	}
}
