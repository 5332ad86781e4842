package frontend

var (
	_ Statement = (*BeginTxnStatement)(nil)
	_ Statement = (*FinishTxnStatement)(nil)
)

// BeginTxnStatement denotes a BEGIN [READ ONLY | READ WRITE] statement
type BeginTxnStatement struct {
	ReadOnly bool
}

func (bts *BeginTxnStatement) statement() {}

// FinishTxnStatement denotes a COMMIT/ROLLBACK statement
type FinishTxnStatement struct {
	IsCommit bool
}

func (fts *FinishTxnStatement) statement() {}
