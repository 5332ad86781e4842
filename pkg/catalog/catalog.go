package catalog

import (
	"fmt"
	"sync"

	icommon "github.com/frostlightdb/frostlight/internal/common"
	log "github.com/sirupsen/logrus"
)

// TableInfo is the catalog entry for a single table.
// Columns are kept in declaration order.
type TableInfo struct {
	ID      TableRefId
	Name    string
	Columns []ColumnCatalog
}

// ColumnByName returns the column catalog entry with the given name.
func (ti *TableInfo) ColumnByName(name string) (ColumnCatalog, bool) {
	for _, col := range ti.Columns {
		if col.Desc.Name == name {
			return col, true
		}
	}

	return ColumnCatalog{}, false
}

// ColumnIds returns the ids of all the columns in declaration order.
func (ti *TableInfo) ColumnIds() []ColumnId {
	ids := make([]ColumnId, len(ti.Columns))
	for i, col := range ti.Columns {
		ids[i] = col.ID
	}

	return ids
}

// Catalog is the registry of tables known to the engine.
// Operations on it are thread safe using a RWMutex.
type Catalog struct {
	mu *sync.RWMutex

	nextTableID TableRefId

	byName map[string]*TableInfo
	byID   map[TableRefId]*TableInfo
}

// CreateTable registers a new table with the given columns and allocates
// its table ref id as well as the ids of the columns in declaration order.
func (c *Catalog) CreateTable(name string, columns []ColumnDesc) (*TableInfo, error) {
	log.WithFields(log.Fields{"name": name}).Debug("catalog::catalog::CreateTable; started")

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byName[name]; ok {
		return nil, icommon.NewAlreadyExistsError(fmt.Sprintf("table %s already exists", name))
	}
	seen := make(map[string]bool)
	for _, desc := range columns {
		if seen[desc.Name] {
			return nil, icommon.NewAlreadyExistsError(fmt.Sprintf("duplicate column %s in table %s", desc.Name, name))
		}
		seen[desc.Name] = true
	}

	ti := &TableInfo{
		ID:   c.nextTableID,
		Name: name,
	}
	for i, desc := range columns {
		ti.Columns = append(ti.Columns, ColumnCatalog{ID: ColumnId(i), Desc: desc})
	}
	c.nextTableID++

	c.byName[name] = ti
	c.byID[ti.ID] = ti

	log.WithFields(log.Fields{"name": name, "id": ti.ID}).Debug("catalog::catalog::CreateTable; done")
	return ti, nil
}

// TableByName returns the catalog entry of the table with the given name.
func (c *Catalog) TableByName(name string) (*TableInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ti, ok := c.byName[name]
	if !ok {
		return nil, icommon.NewNotFoundError(fmt.Sprintf("table %s not found", name))
	}

	return ti, nil
}

// TableByID returns the catalog entry of the table with the given id.
func (c *Catalog) TableByID(id TableRefId) (*TableInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ti, ok := c.byID[id]
	if !ok {
		return nil, icommon.NewNotFoundError(fmt.Sprintf("table %d not found", id))
	}

	return ti, nil
}

// DropTable removes the table with the given name from the catalog.
func (c *Catalog) DropTable(name string) (*TableInfo, error) {
	log.WithFields(log.Fields{"name": name}).Debug("catalog::catalog::DropTable; started")

	c.mu.Lock()
	defer c.mu.Unlock()

	ti, ok := c.byName[name]
	if !ok {
		return nil, icommon.NewNotFoundError(fmt.Sprintf("table %s not found", name))
	}

	delete(c.byName, name)
	delete(c.byID, ti.ID)
	return ti, nil
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		mu:     new(sync.RWMutex),
		byName: make(map[string]*TableInfo),
		byID:   make(map[TableRefId]*TableInfo),
	}
}
