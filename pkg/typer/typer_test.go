package typer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"minisql/pkg/catalog"
	"minisql/pkg/lexer"
	"minisql/pkg/parser"
	"minisql/pkg/types"
)

func mustParse(t *testing.T, src string) parser.Statement {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	require.NoError(t, err)
	stmt, err := parser.Parse(tokens)
	require.NoError(t, err)
	return stmt
}

func TestInfer_CreateCollapsesUnsizedCharacter(t *testing.T) {
	cat := catalog.New()
	stmt := mustParse(t, "CREATE TABLE t (name CHARACTER);")

	out, err := Infer(cat, stmt)
	require.NoError(t, err)

	create := out.(*CreateStmt)
	require.True(t, create.Columns[0].Type.Equal(types.NewCharacter(255)))
}

func TestInfer_InsertExpandsDefaultedColumns(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("table1")
	cat.AddColumnTo("table1", catalog.Column{Name: "col1", Type: types.NewInteger()})
	cat.AddColumnTo("table1", catalog.Column{
		Name: "col2", Type: types.NewInteger(), HasDefault: true, DefaultText: "1", DefaultIsNum: true,
	})

	stmt := mustParse(t, "INSERT INTO table1 (col1) VALUES (1);")
	out, err := Infer(cat, stmt)
	require.NoError(t, err)

	insert := out.(*InsertStmt)
	require.Equal(t, []string{"col1", "col2"}, insert.Columns)
	require.Len(t, insert.Row, 2)
	require.Equal(t, "1", insert.Row[1].Text)
	require.Equal(t, parser.NumericLiteral, insert.Row[1].Kind)
}

func TestInfer_InsertWithNoColumnListLeavesRowUntouched(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")
	cat.AddColumnTo("t", catalog.Column{Name: "a", Type: types.NewInteger()})

	stmt := mustParse(t, "INSERT INTO t VALUES (1);")
	out, err := Infer(cat, stmt)
	require.NoError(t, err)

	insert := out.(*InsertStmt)
	require.Equal(t, []string{"a"}, insert.Columns)
	require.Len(t, insert.Row, 1)
}

func TestInfer_InsertSkipsUndefaultedMissingColumns(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")
	cat.AddColumnTo("t", catalog.Column{Name: "a", Type: types.NewInteger()})
	cat.AddColumnTo("t", catalog.Column{Name: "b", Type: types.NewInteger()})

	stmt := mustParse(t, "INSERT INTO t (a) VALUES (1);")
	out, err := Infer(cat, stmt)
	require.NoError(t, err)

	insert := out.(*InsertStmt)
	require.Equal(t, []string{"a", "b"}, insert.Columns)
	require.Len(t, insert.Row, 1)
}

func TestInfer_SelectResolvesColumnTypes(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")
	cat.AddColumnTo("t", catalog.Column{Name: "col", Type: types.NewInteger()})

	stmt := mustParse(t, "SELECT col FROM t;")
	out, err := Infer(cat, stmt)
	require.NoError(t, err)

	sel := out.(*SelectStmt)
	require.True(t, sel.Columns[0].Found)
	require.True(t, sel.Columns[0].Type.Equal(types.NewInteger()))
}

func TestInfer_SelectUnknownColumnLeftUnresolved(t *testing.T) {
	cat := catalog.New()
	cat.AddTable("t")

	stmt := mustParse(t, "SELECT ghost FROM t;")
	out, err := Infer(cat, stmt)
	require.NoError(t, err)

	sel := out.(*SelectStmt)
	require.False(t, sel.Columns[0].Found)
}

func TestInfer_DeletePassesThrough(t *testing.T) {
	cat := catalog.New()
	stmt := mustParse(t, "DELETE FROM t WHERE id = 1;")

	out, err := Infer(cat, stmt)
	require.NoError(t, err)

	del := out.(*DeleteStmt)
	require.Equal(t, "t", del.Table)
	require.NotNil(t, del.Predicate)
}
