package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/common"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/storage"
	log "github.com/sirupsen/logrus"

	icommon "github.com/frostlightdb/frostlight/internal/common"
)

// Engine runs sql statements against the in-memory storage.
// It owns the catalog and the storage and drives the full pipeline:
// parse, validate, plan, execute.
//
// BEGIN/COMMIT/ROLLBACK delimit an engine level session. The session only
// groups statements for convenience and gates mutations in a READ ONLY
// session; it provides no cross statement atomicity.
type Engine struct {
	name    string
	conf    *common.EngineConfig
	catalog *catalog.Catalog
	storage storage.Storage

	mu          sync.Mutex
	inTxn       bool
	txnReadOnly bool
}

// NewEngine creates a new engine for running sql queries.
func NewEngine(name string, conf *common.EngineConfig) *Engine {
	return &Engine{
		name:    name,
		conf:    conf,
		catalog: catalog.NewCatalog(),
		storage: storage.NewInMemoryStorage(),
	}
}

// Execute executes a sql command obtained from the REPL or an embedding
// application and returns its result.
func (e *Engine) Execute(ctx context.Context, cmd string) Result {
	log.WithFields(log.Fields{"name": e.name, "cmd": cmd}).Info("executor::engine::Execute; starting execution of command;")

	p := frontend.NewParser(e.name, cmd)
	stmt, err := p.Parse()
	if err != nil {
		return &QueryResult{Err: err}
	}

	if err := newValidator(stmt).validate(); err != nil {
		return &QueryResult{Err: err}
	}

	if res := e.applySession(stmt); res != nil {
		return res
	}

	// derive the query plan
	pn, err := newPlanner(stmt, e.catalog).plan().optimize().get()
	if err != nil {
		return &QueryResult{Err: err}
	}

	ex, err := e.getExecutor(pn)
	if err != nil {
		return &QueryResult{Err: err}
	}

	return ex.Execute(ctx)
}

//
// Internal methods
//

// applySession handles the session statements and gates mutating
// statements inside a READ ONLY session. It returns a non-nil result when
// the statement was fully handled here.
func (e *Engine) applySession(stmt frontend.Statement) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch st := stmt.(type) {
	case *frontend.BeginTxnStatement:
		if e.inTxn {
			return &TxnResult{Err: fmt.Errorf("a transaction is already in progress")}
		}
		e.inTxn = true
		e.txnReadOnly = st.ReadOnly
		return &TxnResult{}

	case *frontend.FinishTxnStatement:
		if !e.inTxn {
			return &TxnResult{Err: fmt.Errorf("no transaction in progress")}
		}
		e.inTxn = false
		return &TxnResult{}

	case *frontend.CreateTableStatement, *frontend.DropTableStatement,
		*frontend.InsertStatement, *frontend.DeleteStatement:
		if e.inTxn && e.txnReadOnly {
			return &QueryResult{Err: icommon.NewInvalidTxnModeError("mutating statement in a read only transaction")}
		}
	}

	return nil
}

func (e *Engine) getExecutor(pn PlanNode) (Executor, error) {
	switch n := pn.(type) {
	case *CreateTablePlanNode:
		return &CreateTableExecutor{catalog: e.catalog, storage: e.storage, Schema: n.Schema}, nil

	case *DropTablePlanNode:
		return &DropTableExecutor{catalog: e.catalog, storage: e.storage, TableName: n.TableName}, nil

	case *InsertPlanNode:
		return &InsertExecutor{storage: e.storage, plan: n}, nil

	case *DeletePlanNode:
		return &DeleteExecutor{storage: e.storage, plan: n}, nil

	case *SeqScanPlanNode:
		return &SeqScanExecutor{storage: e.storage, plan: n}, nil
	}

	return nil, fmt.Errorf("executor::engine::getExecutor: no executor for plan node %T", pn)
}
