package executor

import (
	"context"

	"github.com/frostlightdb/frostlight/pkg/storage"
	"github.com/frostlightdb/frostlight/pkg/types"
	log "github.com/sirupsen/logrus"
)

// SeqScanExecutor is the executor for the select query.
// It scans the table's chunk sequence through a read-only transaction,
// filtering out tombstoned rows and rows failing the predicate.
type SeqScanExecutor struct {
	storage storage.Storage
	plan    *SeqScanPlanNode
}

var _ Executor = (*SeqScanExecutor)(nil)

// Execute executes the scan
func (ex *SeqScanExecutor) Execute(ctx context.Context) Result {
	log.WithFields(log.Fields{"table": ex.plan.Table.Name}).Debug("executor::dql_executor::SeqScanExecutor.Execute; start;")
	res := &QueryResult{Columns: ex.plan.OutputNames}

	tbl, err := ex.storage.GetTable(ex.plan.Table.ID)
	if err != nil {
		res.Err = err
		return res
	}

	txn, err := tbl.Read(ctx)
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

			// a row is visible iff its id is not tombstoned
			if deleted.Contains(id) {
				continue
			}

			row := c.Row(i)
			if ex.plan.Predicate != nil {
				matched, err := evaluatePredicate(ex.plan.Predicate, row)
				if err != nil {
					res.Err = err
					return res
				}
				if !matched {
					continue
				}
			}

			out := make([]*types.DataValue, len(ex.plan.Projections))
			for j, proj := range ex.plan.Projections {
				out[j], err = evaluateBoundExpr(proj, row)
				if err != nil {
					res.Err = err
					return res
				}
			}
			res.Rows = append(res.Rows, out)
		}
	}

	return res
}
