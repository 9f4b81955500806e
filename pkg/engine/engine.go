// Package engine wires the pipeline stages together behind one function,
// Evaluate: text -> tokens -> raw statement -> typed statement -> validated
// statement -> execution result.
package engine

import (
	"minisql/pkg/catalog"
	"minisql/pkg/executor"
	"minisql/pkg/lexer"
	"minisql/pkg/parser"
	"minisql/pkg/store"
	"minisql/pkg/telemetry"
	"minisql/pkg/typer"
	"minisql/pkg/validator"
)

// Result mirrors executor.Result: a Message, or Data rows with IsData set.
type Result = executor.Result

// Engine owns the catalog and store that every Evaluate call runs against.
// They are created once per engine instance and outlive any single query.
type Engine struct {
	catalog *catalog.Catalog
	store   *store.Store
	logger  *telemetry.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's logger.
func WithLogger(l *telemetry.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithCatalog overrides the engine's catalog, for sharing one catalog
// across multiple engines in tests.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithStore overrides the engine's store.
func WithStore(s *store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// New returns an Engine with a fresh catalog and store, unless overridden
// by options.
func New(opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog.New(),
		store:   store.New(),
		logger:  telemetry.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs queryText through the full pipeline against the engine's
// catalog and store.
func (e *Engine) Evaluate(queryText string) (Result, error) {
	tokens, err := lexer.Tokenize(queryText)
	if err != nil {
		return Result{}, err
	}

	raw, err := parser.Parse(tokens)
	if err != nil {
		return Result{}, err
	}

	typed, err := typer.Infer(e.catalog, raw)
	if err != nil {
		return Result{}, err
	}

	if err := validator.Validate(e.catalog, typed); err != nil {
		return Result{}, err
	}

	res, err := executor.Execute(e.catalog, e.store, typed)
	if err != nil {
		return Result{}, err
	}

	e.logger.Debug("executed statement", telemetry.Fields{
		"kind":  statementKind(raw),
		"table": statementTable(raw),
		"rows":  len(res.Data),
	})
	return res, nil
}

func statementKind(stmt parser.Statement) string {
	switch stmt.(type) {
	case *parser.CreateStmt:
		return "CREATE"
	case *parser.InsertStmt:
		return "INSERT"
	case *parser.SelectStmt:
		return "SELECT"
	case *parser.DeleteStmt:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

func statementTable(stmt parser.Statement) string {
	switch s := stmt.(type) {
	case *parser.CreateStmt:
		return s.Table
	case *parser.InsertStmt:
		return s.Table
	case *parser.SelectStmt:
		return s.Table
	case *parser.DeleteStmt:
		return s.Table
	default:
		return ""
	}
}
