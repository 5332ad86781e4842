package executor

import (
	"github.com/frostlightdb/frostlight/pkg/binder"
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/frontend"
)

// PlanNode is a node of the query execution plan
type PlanNode interface {
	planNode()
}

var _ PlanNode = (*CreateTablePlanNode)(nil)
var _ PlanNode = (*DropTablePlanNode)(nil)
var _ PlanNode = (*InsertPlanNode)(nil)
var _ PlanNode = (*DeletePlanNode)(nil)
var _ PlanNode = (*SeqScanPlanNode)(nil)
var _ PlanNode = (*BeginTxnPlanNode)(nil)
var _ PlanNode = (*FinishTxnPlanNode)(nil)

// CreateTablePlanNode is the plan node for the create table statement
type CreateTablePlanNode struct {
	Schema *frontend.TableSpec
}

// DropTablePlanNode is the plan node for the drop table statement
type DropTablePlanNode struct {
	TableName string
}

// InsertPlanNode is the plan node for the insert statement.
// Rows holds one bound expression per target column, in the declaration
// order of the table's columns.
type InsertPlanNode struct {
	Table *catalog.TableInfo
	Rows  [][]*binder.BoundExpr
}

// DeletePlanNode is the plan node for the delete statement.
// A nil Predicate deletes every live row.
type DeletePlanNode struct {
	Table     *catalog.TableInfo
	Predicate *binder.BoundExpr
}

// SeqScanPlanNode is the plan node for the select statement.
// A nil Predicate selects every live row.
type SeqScanPlanNode struct {
	Table       *catalog.TableInfo
	Projections []*binder.BoundExpr
	OutputNames []string
	Predicate   *binder.BoundExpr
}

// BeginTxnPlanNode is the plan node for the begin transaction statement
type BeginTxnPlanNode struct {
	ReadOnly bool
}

// FinishTxnPlanNode is the plan node for the commit/rollback statement
type FinishTxnPlanNode struct {
	IsCommit bool
}

func (*CreateTablePlanNode) planNode() {}
func (*DropTablePlanNode) planNode()   {}
func (*InsertPlanNode) planNode()      {}
func (*DeletePlanNode) planNode()      {}
func (*SeqScanPlanNode) planNode()     {}
func (*BeginTxnPlanNode) planNode()    {}
func (*FinishTxnPlanNode) planNode()   {}
