package executor

import (
	"context"

	"github.com/frostlightdb/frostlight/pkg/catalog"
	"github.com/frostlightdb/frostlight/pkg/frontend"
	"github.com/frostlightdb/frostlight/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Executor executes a query plan
type Executor interface {
	Execute(ctx context.Context) Result
}

// CreateTableExecutor is the executor for the create table query
type CreateTableExecutor struct {
	catalog *catalog.Catalog
	storage storage.Storage
	Schema  *frontend.TableSpec
}

var _ Executor = (*CreateTableExecutor)(nil)

// Execute registers the table in the catalog and creates its storage.
func (ex *CreateTableExecutor) Execute(ctx context.Context) Result {
	log.WithFields(log.Fields{"table": ex.Schema.TableName}).Info("executor::ddl_executor::CreateTableExecutor.Execute; start;")
	res := &CreateTableResult{TableName: ex.Schema.TableName}

	descs := make([]catalog.ColumnDesc, len(ex.Schema.Columns))
	for i, col := range ex.Schema.Columns {
		descs[i] = catalog.ColumnDesc{
			Name:       col.Name,
			Typ:        col.Typ,
			Nullable:   col.Nullable,
			PrimaryKey: col.PrimaryKey,
		}
	}

	ti, err := ex.catalog.CreateTable(ex.Schema.TableName, descs)
	if err != nil {
		res.Err = err
		return res
	}

	if _, err = ex.storage.CreateTable(ti.ID, ti.Columns); err != nil {
		// keep catalog and storage in sync
		_, _ = ex.catalog.DropTable(ex.Schema.TableName)
		res.Err = err
	}

	return res
}

// DropTableExecutor is the executor for the drop table query
type DropTableExecutor struct {
	catalog *catalog.Catalog
	storage storage.Storage

	TableName string
}

var _ Executor = (*DropTableExecutor)(nil)

// Execute drops the table's storage and then its catalog entry.
func (ex *DropTableExecutor) Execute(ctx context.Context) Result {
	log.WithFields(log.Fields{"table": ex.TableName}).Info("executor::ddl_executor::DropTableExecutor.Execute; start;")
	res := &DropTableResult{TableName: ex.TableName}

	ti, err := ex.catalog.TableByName(ex.TableName)
	if err != nil {
		res.Err = err
		return res
	}

	if err := ex.storage.DropTable(ti.ID); err != nil {
		res.Err = err
		return res
	}

	_, res.Err = ex.catalog.DropTable(ex.TableName)
	return res
}
