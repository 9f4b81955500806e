package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"minisql/pkg/catalog"
	"minisql/pkg/lexer"
	"minisql/pkg/parser"
	"minisql/pkg/typer"
	"minisql/pkg/types"
)

func infer(t *testing.T, cat *catalog.Catalog, src string) any {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	require.NoError(t, err)
	stmt, err := parser.Parse(tokens)
	require.NoError(t, err)
	out, err := typer.Infer(cat, stmt)
	require.NoError(t, err)
	return out
}

func TestValidate_CreateDuplicateTable(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")

	stmt := infer(t, cat, "CREATE TABLE t (id INTEGER);")
	err := Validate(cat, stmt)
	require.EqualError(t, err, "Table t already exists")
}

func TestValidate_CreateDuplicateColumn(t *testing.T) {
	cat := catalog.New()
	stmt := infer(t, cat, "CREATE TABLE t (id INTEGER, id INTEGER);")
	err := Validate(cat, stmt)
	require.EqualError(t, err, "Column id is already defined in t")
}

func TestValidate_CreateOK(t *testing.T) {
	cat := catalog.New()
	stmt := infer(t, cat, "CREATE TABLE t (id INTEGER);")
	require.NoError(t, Validate(cat, stmt))
}

func TestValidate_InsertMissingTable(t *testing.T) {
	cat := catalog.New()
	stmt := infer(t, cat, "INSERT INTO ghost VALUES (1);")
	err := Validate(cat, stmt)
	require.EqualError(t, err, "[ERR 100] table 'ghost' does not exist")
}

func TestValidate_InsertTypeMismatchStringIntoInt(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")
	cat.AddColumnTo("t", catalog.Column{Name: "col", Type: types.NewInteger()})

	stmt := infer(t, cat, "INSERT INTO t VALUES ('string');")
	err := Validate(cat, stmt)
	require.EqualError(t, err, "column type is INT find VARCHAR")
}

func TestValidate_InsertTypeMismatchNumberIntoCharacter(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t1")
	cat.AddColumnTo("t1", catalog.Column{Name: "col", Type: types.NewCharacter(1)})

	stmt := infer(t, cat, "INSERT INTO t1 VALUES (5);")
	err := Validate(cat, stmt)
	require.EqualError(t, err, "column type is VARCHAR find INT")
}

func TestValidate_SelectUnknownColumn(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")

	stmt := infer(t, cat, "SELECT ghost FROM t;")
	err := Validate(cat, stmt)
	require.EqualError(t, err, "column ghost does not exist in t")
}

func TestValidate_SelectMissingTable(t *testing.T) {
	cat := catalog.New()
	stmt := infer(t, cat, "SELECT col FROM ghost;")
	err := Validate(cat, stmt)
	require.EqualError(t, err, "[ERR 100] table 'ghost' does not exist")
}

func TestValidate_DeleteOK(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")
	cat.AddColumnTo("t", catalog.Column{Name: "col", Type: types.NewInteger()})

	stmt := infer(t, cat, "DELETE FROM t WHERE col = 1;")
	require.NoError(t, Validate(cat, stmt))
}
