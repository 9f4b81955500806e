// Package typer is the type inference stage: it defaults unspecified
// column sizes, expands INSERT column lists with catalog defaults, and
// resolves SELECT column types from the catalog.
package typer

import (
	"minisql/pkg/catalog"
	"minisql/pkg/parser"
	"minisql/pkg/types"
)

// Column is a SELECT projection column after its type has been resolved
// against the catalog. Found is false when the name has no catalog entry;
// the validator, not the typer, rejects that case.
type Column struct {
	Name  string
	Type  types.Type
	Found bool
}

// CreateStmt is parser.CreateStmt with every Character(none) column
// concretized to Character(255).
type CreateStmt struct {
	Table   string
	Columns []parser.ColumnDef
}

// InsertStmt is parser.InsertStmt with its column list expanded to include
// every column missing from the original statement, in catalog order, and
// (for the literal-row form) the default values of those missing columns
// that carry one appended to Row.
type InsertStmt struct {
	Table   string
	Columns []string
	Row     []parser.Literal
	Sub     *SelectStmt
}

// SelectStmt is parser.SelectStmt with its projection columns resolved to
// their catalog types.
type SelectStmt struct {
	Table     string
	Columns   []Column
	Predicate *parser.Predicate
}

// DeleteStmt passes through unchanged; type inference has nothing to resolve
// for a DELETE.
type DeleteStmt struct {
	Table     string
	Predicate *parser.Predicate
}

// Infer runs the type inference stage against a catalog snapshot.
func Infer(cat *catalog.Catalog, stmt parser.Statement) (any, error) {
	switch s := stmt.(type) {
	case *parser.CreateStmt:
		return inferCreate(s), nil
	case *parser.InsertStmt:
		return inferInsert(cat, s), nil
	case *parser.SelectStmt:
		return inferSelect(cat, s), nil
	case *parser.DeleteStmt:
		return &DeleteStmt{Table: s.Table, Predicate: s.Predicate}, nil
	default:
		return nil, nil
	}
}

func inferCreate(s *parser.CreateStmt) *CreateStmt {
	columns := make([]parser.ColumnDef, len(s.Columns))
	for i, col := range s.Columns {
		if col.Type.Kind == types.Character && !col.Type.HasSize() {
			col.Type = types.NewCharacter(255)
		}
		columns[i] = col
	}
	return &CreateStmt{Table: s.Table, Columns: columns}
}

func inferInsert(cat *catalog.Catalog, s *parser.InsertStmt) *InsertStmt {
	catCols := cat.GetTableColumns(s.Table)

	present := make(map[string]bool, len(s.Columns))
	for _, name := range s.Columns {
		present[name] = true
	}

	columns := append([]string(nil), s.Columns...)
	var defaults []parser.Literal
	for _, col := range catCols {
		if present[col.Name] {
			continue
		}
		columns = append(columns, col.Name)
		if !col.HasDefault {
			continue
		}
		lit := parser.Literal{Text: col.DefaultText, Kind: parser.StringLiteral}
		if col.DefaultIsNum {
			lit.Kind = parser.NumericLiteral
		}
		defaults = append(defaults, lit)
	}

	out := &InsertStmt{Table: s.Table, Columns: columns}

	if s.Row != nil {
		row := append([]parser.Literal(nil), s.Row...)
		row = append(row, defaults...)
		out.Row = row
	}
	if s.Sub != nil {
		out.Sub = inferSelect(cat, s.Sub)
	}

	return out
}

func inferSelect(cat *catalog.Catalog, s *parser.SelectStmt) *SelectStmt {
	columns := make([]Column, len(s.Columns))
	for i, name := range s.Columns {
		typ, ok := cat.GetColumnType(s.Table, name)
		columns[i] = Column{Name: name, Type: typ, Found: ok}
	}
	return &SelectStmt{Table: s.Table, Columns: columns, Predicate: s.Predicate}
}
