package executor

import (
	"fmt"

	"github.com/frostlightdb/frostlight/pkg/binder"
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/types"

	icommon "github.com/frostlightdb/frostlight/internal/common"
)

// planner derives the execution plan of a sql query.
// It resolves table and column references against the catalog and binds
// every expression in the process.
type planner struct {
	stmt    frontend.Statement
	catalog *catalog.Catalog

	res PlanNode
	err error // errors encountered during the process
}

// plan the execution
func (p *planner) plan() *planner {
	switch st := p.stmt.(type) {
	case *frontend.CreateTableStatement:
		p.res = &CreateTablePlanNode{
			Schema: st.Spec,
		}

	case *frontend.DropTableStatement:
		p.res = &DropTablePlanNode{
			TableName: st.TableName,
		}

	case *frontend.InsertStatement:
		p.res, p.err = p.planInsert(st)

	case *frontend.DeleteStatement:
		p.res, p.err = p.planDelete(st)

	case *frontend.SelectStatement:
		p.res, p.err = p.planSelect(st)

	case *frontend.BeginTxnStatement:
		p.res = &BeginTxnPlanNode{ReadOnly: st.ReadOnly}

	case *frontend.FinishTxnStatement:
		p.res = &FinishTxnPlanNode{IsCommit: st.IsCommit}

	default:
		p.err = fmt.Errorf("executor::planner::plan: unsupported statement type %T", st)
	}

	return p
}

// optimize optimizes the plan
func (p *planner) optimize() *planner {
	return p
}

// get returns the final plan
func (p *planner) get() (PlanNode, error) {
	if p.err != nil {
		return nil, p.err
	}

	return p.res, nil
}

// newPlanner creates a new planner for the given statement
func newPlanner(stmt frontend.Statement, cat *catalog.Catalog) *planner {
	return &planner{
		stmt:    stmt,
		catalog: cat,
	}
}

//
// Internal methods
//

// planInsert binds the value rows of an insert statement.
// Each planned row has one bound expression per table column in declaration
// order. Columns absent from the statement's column list are bound to NULL.
func (p *planner) planInsert(st *frontend.InsertStatement) (PlanNode, error) {
	ti, err := p.catalog.TableByName(st.Table.Name)
	if err != nil {
		return nil, err
	}

	// map the position of each value expression to a column index
	targets := make([]int, 0, len(ti.Columns))
	if len(st.Columns) == 0 {
		for i := range ti.Columns {
			targets = append(targets, i)
		}
	} else {
		for _, name := range st.Columns {
			col, ok := ti.ColumnByName(name)
			if !ok {
				return nil, icommon.NewUnknownColumnError(fmt.Sprintf("unknown column %s in table %s", name, ti.Name))
			}
			targets = append(targets, int(col.ID))
		}
	}

	// values in an insert statement cannot reference columns
	bn := binder.NewBinder(nil)

	node := &InsertPlanNode{Table: ti}
	for _, row := range st.Rows {
		if len(row) != len(targets) {
			return nil, fmt.Errorf("insert row has %d values, expected %d", len(row), len(targets))
		}

		bound := make([]*binder.BoundExpr, len(ti.Columns))
		for i, exp := range row {
			be, err := bn.Bind(exp)
			if err != nil {
				return nil, err
			}
			bound[targets[i]] = be
		}
		for i := range bound {
			if bound[i] == nil {
				bound[i] = &binder.BoundExpr{
					Kind: &binder.BoundConstant{Value: types.NewNullValue()},
				}
			}
		}

		node.Rows = append(node.Rows, bound)
	}

	return node, nil
}

func (p *planner) planDelete(st *frontend.DeleteStatement) (PlanNode, error) {
	ti, err := p.catalog.TableByName(st.Table.Name)
	if err != nil {
		return nil, err
	}

	node := &DeletePlanNode{Table: ti}
	if st.Predicate != nil {
		node.Predicate, err = binder.NewBinder(ti).Bind(st.Predicate)
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

func (p *planner) planSelect(st *frontend.SelectStatement) (PlanNode, error) {
	ti, err := p.catalog.TableByName(st.From.Name)
	if err != nil {
		return nil, err
	}

	bn := binder.NewBinder(ti)
	node := &SeqScanPlanNode{Table: ti}

	// SELECT * expands to a column ref per table column
	if len(st.Selections) == 1 {
		if _, ok := st.Selections[0].Expr.(*frontend.SelectAllExpression); ok {
			for _, col := range ti.Columns {
				be, err := bn.Bind(&frontend.IdentifierExpression{Identifier: col.Desc.Name})
				if err != nil {
					return nil, err
				}
				node.Projections = append(node.Projections, be)
				node.OutputNames = append(node.OutputNames, col.Desc.Name)
			}

			node.Predicate, err = p.bindPredicate(bn, st.Where)
			return node, err
		}
	}

	for i, sel := range st.Selections {
		if _, ok := sel.Expr.(*frontend.SelectAllExpression); ok {
			return nil, fmt.Errorf("'*' cannot be combined with other selections")
		}

		be, err := bn.Bind(sel.Expr)
		if err != nil {
			return nil, err
		}
		node.Projections = append(node.Projections, be)
		node.OutputNames = append(node.OutputNames, outputName(sel, i))
	}

	node.Predicate, err = p.bindPredicate(bn, st.Where)
	return node, err
}

func (p *planner) bindPredicate(bn *binder.Binder, where frontend.Expression) (*binder.BoundExpr, error) {
	if where == nil {
		return nil, nil
	}

	return bn.Bind(where)
}

// outputName derives the column header of a selection
func outputName(sel *frontend.SelectionItem, pos int) string {
	if sel.OutputName != "" {
		return sel.OutputName
	}
	if id, ok := sel.Expr.(*frontend.IdentifierExpression); ok {
		return id.Identifier
	}

	return fmt.Sprintf("column%d", pos)
}
