package executor

import (
	"context"
	"testing"

	"github.com/frostlightdb/frostlight/pkg/common"
	"github.com/frostlightdb/frostlight/pkg/types"
	"github.com/stretchr/testify/assert"
)

func newTestEngine() *Engine {
	return NewEngine("testEngine", common.NewDefaultEngineConfig())
}

func mustExec(t *testing.T, e *Engine, cmd string) Result {
	res := e.Execute(context.Background(), cmd)
	assert.False(t, res.HasError(), "Unexpected error in executing %q: %v", cmd, res.GetError())
	return res
}

func TestEngineCreateInsertSelect(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER PRIMARY KEY, name VARCHAR);")

	ir := mustExec(t, e, "INSERT INTO students VALUES (1, \"rick\"), (2, \"morty\");").(*InsertResult)
	assert.Equal(t, 2, ir.RowsInserted, "Unexpected number of inserted rows")

	qr := mustExec(t, e, "SELECT * FROM students;").(*QueryResult)
	assert.Equal(t, []string{"id", "name"}, qr.Columns, "Unexpected column headers")
	assert.Equal(t, 2, len(qr.Rows), "Unexpected number of rows")
	assert.Equal(t, int32(1), qr.Rows[0][0].GetAsInt(), "Unexpected value")
	assert.Equal(t, "rick", qr.Rows[0][1].GetAsString(), "Unexpected value")
}

func TestEngineDelete(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER, name VARCHAR);")
	mustExec(t, e, "INSERT INTO students VALUES (1, \"a\"), (2, \"b\");")
	mustExec(t, e, "INSERT INTO students VALUES (3, \"c\");")

	dr := mustExec(t, e, "DELETE FROM students WHERE id = 2;").(*DeleteResult)
	assert.Equal(t, uint64(1), dr.RowsDeleted, "Unexpected number of deleted rows")

	qr := mustExec(t, e, "SELECT id FROM students;").(*QueryResult)
	assert.Equal(t, 2, len(qr.Rows), "Unexpected number of rows after delete")
	assert.Equal(t, int32(1), qr.Rows[0][0].GetAsInt(), "Unexpected row")
	assert.Equal(t, int32(3), qr.Rows[1][0].GetAsInt(), "Unexpected row")

	// deleting again matches nothing
	dr = mustExec(t, e, "DELETE FROM students WHERE id = 2;").(*DeleteResult)
	assert.Equal(t, uint64(0), dr.RowsDeleted, "Expected no rows to match")
}

func TestEngineDeleteWithoutPredicate(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER);")
	mustExec(t, e, "INSERT INTO students VALUES (1), (2), (3);")

	dr := mustExec(t, e, "DELETE FROM students;").(*DeleteResult)
	assert.Equal(t, uint64(3), dr.RowsDeleted, "Expected all rows to be deleted")

	qr := mustExec(t, e, "SELECT * FROM students;").(*QueryResult)
	assert.Equal(t, 0, len(qr.Rows), "Expected no rows after deleting everything")
}

func TestEngineProjectionAndPredicate(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER, gpa FLOAT);")
	mustExec(t, e, "INSERT INTO students VALUES (1, 3.9), (2, 2.5), (3, 3.6);")

	qr := mustExec(t, e, "SELECT id + 10 AS shifted FROM students WHERE gpa > 3.5;").(*QueryResult)
	assert.Equal(t, []string{"shifted"}, qr.Columns, "Unexpected column headers")
	assert.Equal(t, 2, len(qr.Rows), "Unexpected number of rows")
	assert.Equal(t, int32(11), qr.Rows[0][0].GetAsInt(), "Unexpected value")
	assert.Equal(t, int32(13), qr.Rows[1][0].GetAsInt(), "Unexpected value")
}

func TestEngineCast(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER);")
	mustExec(t, e, "INSERT INTO students VALUES (7);")

	qr := mustExec(t, e, "SELECT CAST(id AS FLOAT) FROM students;").(*QueryResult)
	assert.Equal(t, types.DataTypeFloat, qr.Rows[0][0].Typ, "Expected a float value")
	assert.Equal(t, 7.0, qr.Rows[0][0].GetAsFloat(), "Unexpected value")
}

func TestEngineNullHandling(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER, name VARCHAR NULL);")
	mustExec(t, e, "INSERT INTO students VALUES (1, NULL), (2, \"b\");")

	// a NULL predicate result filters the row out
	qr := mustExec(t, e, "SELECT id FROM students WHERE name = \"b\";").(*QueryResult)
	assert.Equal(t, 1, len(qr.Rows), "Unexpected number of rows")
	assert.Equal(t, int32(2), qr.Rows[0][0].GetAsInt(), "Unexpected row")
}

func TestEngineRejectsNullInNonNullableColumn(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER NOT NULL);")

	res := e.Execute(context.Background(), "INSERT INTO students VALUES (NULL);")
	assert.True(t, res.HasError(), "Expected an error for a NULL in a non-nullable column")
}

func TestEngineInsertWithColumnList(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER, name VARCHAR NULL);")
	mustExec(t, e, "INSERT INTO students(id) VALUES (5);")

	qr := mustExec(t, e, "SELECT id, name FROM students;").(*QueryResult)
	assert.Equal(t, int32(5), qr.Rows[0][0].GetAsInt(), "Unexpected value")
	assert.True(t, qr.Rows[0][1].IsNull, "Unspecified column should be NULL")
}

func TestEngineErrors(t *testing.T) {
	e := newTestEngine()

	res := e.Execute(context.Background(), "SELECT * FROM missing;")
	assert.True(t, res.HasError(), "Expected an error for a missing table")

	mustExec(t, e, "CREATE TABLE students(id INTEGER);")

	res = e.Execute(context.Background(), "CREATE TABLE students(id INTEGER);")
	assert.True(t, res.HasError(), "Expected an error for a duplicate table")

	res = e.Execute(context.Background(), "SELECT missing FROM students;")
	assert.True(t, res.HasError(), "Expected an error for an unknown column")

	res = e.Execute(context.Background(), "INSERT INTO students VALUES (1, 2);")
	assert.True(t, res.HasError(), "Expected an error for a wrong arity insert")
}

func TestEngineDropTable(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER);")
	mustExec(t, e, "DROP TABLE students;")

	res := e.Execute(context.Background(), "SELECT * FROM students;")
	assert.True(t, res.HasError(), "Expected an error after dropping the table")

	// the name is free for reuse
	mustExec(t, e, "CREATE TABLE students(id INTEGER);")
}

func TestEngineReadOnlySessionGatesMutations(t *testing.T) {
	e := newTestEngine()

	mustExec(t, e, "CREATE TABLE students(id INTEGER);")
	mustExec(t, e, "BEGIN READ ONLY;")

	res := e.Execute(context.Background(), "INSERT INTO students VALUES (1);")
	assert.True(t, res.HasError(), "Expected an error for a mutation in a read only session")

	mustExec(t, e, "SELECT * FROM students;")
	mustExec(t, e, "COMMIT;")

	// mutations are allowed again outside the session
	mustExec(t, e, "INSERT INTO students VALUES (1);")
}

func TestEngineSessionStateErrors(t *testing.T) {
	e := newTestEngine()

	res := e.Execute(context.Background(), "COMMIT;")
	assert.True(t, res.HasError(), "Expected an error for a commit without a txn")

	mustExec(t, e, "BEGIN;")
	res = e.Execute(context.Background(), "BEGIN;")
	assert.True(t, res.HasError(), "Expected an error for a nested begin")
	mustExec(t, e, "ROLLBACK;")
}
