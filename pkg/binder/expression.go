package binder

import (
	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/types"
)

// BoundExpr is an expression that has been resolved against a table schema
// and type checked. ReturnType is nil iff the expression is statically NULL.
type BoundExpr struct {
	Kind       BoundExprKind
	ReturnType *types.DataType
}

// BoundExprKind is the resolved form of an expression node.
type BoundExprKind interface {
	boundExprKind()
}

// BoundConstant is a literal value.
type BoundConstant struct {
	Value *types.DataValue
}

// BoundColumnRef is a reference to a column of the bound table.
// Index is the position of the column in a row of the table.
type BoundColumnRef struct {
	ColumnID catalog.ColumnId
	Index    int
	Desc     catalog.ColumnDesc
}

// BoundBinaryOp is a binary operation over two bound operands.
type BoundBinaryOp struct {
	Op    frontend.Operator
	Left  *BoundExpr
	Right *BoundExpr
}

// BoundUnaryOp is a unary operation over a bound operand.
type BoundUnaryOp struct {
	Op   frontend.Operator
	Expr *BoundExpr
}

// BoundTypeCast is an explicit CAST of a bound expression to a target type.
type BoundTypeCast struct {
	Target types.DataType
	Expr   *BoundExpr
}

func (*BoundConstant) boundExprKind()  {}
func (*BoundColumnRef) boundExprKind() {}
func (*BoundBinaryOp) boundExprKind()  {}
func (*BoundUnaryOp) boundExprKind()   {}
func (*BoundTypeCast) boundExprKind()  {}

var (
	_ BoundExprKind = (*BoundConstant)(nil)
	_ BoundExprKind = (*BoundColumnRef)(nil)
	_ BoundExprKind = (*BoundBinaryOp)(nil)
	_ BoundExprKind = (*BoundUnaryOp)(nil)
	_ BoundExprKind = (*BoundTypeCast)(nil)
)
