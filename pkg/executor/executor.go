// Package executor runs a validated statement against the catalog and row
// store, producing a Message or Data result.
package executor

import (
	"fmt"
	"strconv"

	"minisql/pkg/catalog"
	"minisql/pkg/parser"
	"minisql/pkg/store"
	"minisql/pkg/typer"
	"minisql/pkg/types"
)

// Result is the executor's output: a Message for CREATE, INSERT and DELETE,
// or Data rows with IsData set for SELECT (Data may be empty or nil).
type Result struct {
	Message string
	Data    []store.Row
	IsData  bool
}

// Execute runs a validated statement (the typer's output, already checked
// by the validator) against cat and st.
func Execute(cat *catalog.Catalog, st *store.Store, stmt any) (Result, error) {
	switch s := stmt.(type) {
	case *typer.CreateStmt:
		return executeCreate(cat, s), nil
	case *typer.InsertStmt:
		return executeInsert(cat, st, s)
	case *typer.SelectStmt:
		return executeSelect(cat, st, s)
	case *typer.DeleteStmt:
		return executeDelete(s), nil
	default:
		return Result{}, fmt.Errorf("unsupported statement for execution")
	}
}

func executeCreate(cat *catalog.Catalog, s *typer.CreateStmt) Result {
	cat.AddTable(s.Table)
	for _, col := range s.Columns {
		cat.AddColumnTo(s.Table, toCatalogColumn(col))
	}
	return Result{Message: fmt.Sprintf("'%s' was created", s.Table)}
}

// toCatalogColumn carries a column's declared default into the catalog, or
// synthesizes the type-specific zero value when the column is NOT NULL with
// no explicit default.
func toCatalogColumn(col parser.ColumnDef) catalog.Column {
	out := catalog.Column{Name: col.Name, Type: col.Type}

	switch {
	case col.Default != nil:
		out.HasDefault = true
		out.DefaultText = col.Default.Text
		out.DefaultIsNum = col.Default.Kind == parser.NumericLiteral
	case col.NotNull:
		out.HasDefault = true
		out.DefaultIsNum = col.Type.Kind == types.Integer
		if out.DefaultIsNum {
			out.DefaultText = "0"
		}
	}
	return out
}

func executeInsert(cat *catalog.Catalog, st *store.Store, s *typer.InsertStmt) (Result, error) {
	if s.Row != nil {
		row := make(store.Row, len(s.Row))
		for i, lit := range s.Row {
			row[i] = lit.Text
		}
		st.SaveTo(s.Table, row)
		return Result{Message: "row was inserted"}, nil
	}

	if s.Sub != nil {
		sub, err := executeSelect(cat, st, s.Sub)
		if err != nil {
			return Result{}, err
		}
		for _, row := range sub.Data {
			st.SaveTo(s.Table, row)
		}
		return Result{Message: fmt.Sprintf("%d rows were inserted", len(sub.Data))}, nil
	}

	return Result{}, fmt.Errorf("insert statement carries neither a row nor a sub-select")
}

func executeSelect(cat *catalog.Catalog, st *store.Store, s *typer.SelectStmt) (Result, error) {
	if pred := s.Predicate; pred != nil {
		switch {
		case pred.Left.Kind == parser.ArgLimit && pred.Op == parser.Eq && pred.Right.Kind == parser.ArgNumeric:
			n, err := strconv.Atoi(pred.Right.Text)
			if err != nil {
				return Result{}, fmt.Errorf("invalid LIMIT value %q", pred.Right.Text)
			}
			return Result{Data: st.GetRange(s.Table, 0, n), IsData: true}, nil

		case pred.Left.Kind == parser.ArgColumn && pred.Op == parser.NotEq && pred.Right.Kind == parser.ArgString:
			index, ok := cat.GetColumnIndex(s.Table, pred.Left.Text)
			if !ok {
				return Result{}, fmt.Errorf("column %s does not exist in %s", pred.Left.Text, s.Table)
			}
			return Result{Data: st.GetNotEqual(s.Table, index, pred.Right.Text), IsData: true}, nil

		default:
			return Result{}, fmt.Errorf("unsupported predicate shape")
		}
	}

	if len(s.Columns) == 1 {
		index, ok := cat.GetColumnIndex(s.Table, s.Columns[0].Name)
		if !ok {
			return Result{}, fmt.Errorf("column %s does not exist in %s", s.Columns[0].Name, s.Table)
		}
		return Result{Data: st.GetRangeTillEndForColumn(s.Table, index), IsData: true}, nil
	}

	return Result{Data: st.GetRangeTillEnd(s.Table, 0), IsData: true}, nil
}

// executeDelete accepts the statement and reports a status message without
// mutating storage.
func executeDelete(s *typer.DeleteStmt) Result {
	return Result{Message: "0 rows were deleted"}
}
