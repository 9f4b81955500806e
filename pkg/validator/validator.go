// Package validator is the semantic validation stage: existence,
// uniqueness, arity, and type-compatibility checks against the catalog.
// A validated statement has the same shape as its typed input; this package
// only certifies it, returning a textual error on the first failing check.
package validator

import (
	"fmt"

	"minisql/pkg/catalog"
	"minisql/pkg/parser"
	"minisql/pkg/typer"
	"minisql/pkg/types"
)

// Validate checks stmt (the typer's output) against cat and returns an
// error describing the first violated rule, or nil if stmt may execute.
func Validate(cat *catalog.Catalog, stmt any) error {
	switch s := stmt.(type) {
	case *typer.CreateStmt:
		return validateCreate(cat, s)
	case *typer.InsertStmt:
		return validateInsert(cat, s)
	case *typer.SelectStmt:
		return validateSelect(cat, s)
	case *typer.DeleteStmt:
		return validateDelete(cat, s)
	default:
		return fmt.Errorf("unsupported statement for validation")
	}
}

func validateCreate(cat *catalog.Catalog, s *typer.CreateStmt) error {
	if cat.ContainsTable(s.Table) {
		return fmt.Errorf("Table %s already exists", s.Table)
	}

	seen := make(map[string]bool, len(s.Columns))
	for _, col := range s.Columns {
		if seen[col.Name] {
			return fmt.Errorf("Column %s is already defined in %s", col.Name, s.Table)
		}
		seen[col.Name] = true
	}
	return nil
}

func validateInsert(cat *catalog.Catalog, s *typer.InsertStmt) error {
	if !cat.ContainsTable(s.Table) {
		return fmt.Errorf("[ERR 100] table '%s' does not exist", s.Table)
	}

	if s.Row == nil {
		return nil
	}

	for i, lit := range s.Row {
		colType, ok := cat.GetColumnTypeByIndex(s.Table, i)
		if !ok {
			continue
		}
		switch lit.Kind {
		case parser.StringLiteral:
			if colType.Kind == types.Integer {
				return fmt.Errorf("column type is INT find VARCHAR")
			}
		case parser.NumericLiteral:
			if colType.Kind == types.Character {
				return fmt.Errorf("column type is VARCHAR find INT")
			}
		}
	}

	if cols := cat.GetTableColumns(s.Table); len(s.Row) != len(cols) {
		return fmt.Errorf("row has %d values but table %s has %d columns", len(s.Row), s.Table, len(cols))
	}
	return nil
}

func validateSelect(cat *catalog.Catalog, s *typer.SelectStmt) error {
	if !cat.ContainsTable(s.Table) {
		return fmt.Errorf("[ERR 100] table '%s' does not exist", s.Table)
	}
	for _, col := range s.Columns {
		if !col.Found {
			return fmt.Errorf("column %s does not exist in %s", col.Name, s.Table)
		}
	}
	return validatePredicateColumns(cat, s.Table, s.Predicate)
}

func validateDelete(cat *catalog.Catalog, s *typer.DeleteStmt) error {
	if !cat.ContainsTable(s.Table) {
		return fmt.Errorf("[ERR 100] table '%s' does not exist", s.Table)
	}
	return validatePredicateColumns(cat, s.Table, s.Predicate)
}

func validatePredicateColumns(cat *catalog.Catalog, table string, pred *parser.Predicate) error {
	if pred == nil {
		return nil
	}
	for _, arg := range []parser.Arg{pred.Left, pred.Right} {
		if arg.Kind != parser.ArgColumn {
			continue
		}
		if !cat.ContainsColumnIn(table, arg.Text) {
			return fmt.Errorf("column %s does not exist in %s", arg.Text, table)
		}
	}
	return nil
}
