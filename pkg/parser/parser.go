package parser

import (
	"errors"
	"fmt"
	"strconv"

	"minisql/pkg/lexer"
	"minisql/pkg/types"
)

// Parse turns a token stream into a raw statement. The leading token selects
// the production.
func Parse(tokens []lexer.Token) (Statement, error) {
	p := &parser{tokens: tokens}
	tok := p.current()

	switch {
	case p.isKeyword(tok, "CREATE"):
		p.advance()
		return p.parseCreate()
	case p.isKeyword(tok, "INSERT"):
		p.advance()
		return p.parseInsert()
	case p.isKeyword(tok, "SELECT"):
		p.advance()
		return p.parseSelectStatement()
	case p.isKeyword(tok, "DELETE"):
		p.advance()
		return p.parseDelete()
	default:
		return nil, fmt.Errorf("expected CREATE, INSERT, SELECT or DELETE found %s", p.describe(tok))
	}
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

var eofToken = lexer.Token{Type: lexer.EOF}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return eofToken
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) isKeyword(tok lexer.Token, kw string) bool {
	return tok.Type == lexer.KEYWORD && tok.Literal == kw
}

func (p *parser) describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.STRING_CONSTANT:
		return "'" + tok.Literal + "'"
	case lexer.EQUAL_TO:
		return "="
	case lexer.NOT_EQUAL_TO:
		return tok.Literal
	case lexer.LESS_THAN:
		return "<"
	case lexer.LESS_THAN_OR_EQUAL_TO:
		return "<="
	case lexer.GREATER_THAN:
		return ">"
	case lexer.GREATER_THAN_OR_EQUAL_TO:
		return ">="
	default:
		return tok.Literal
	}
}

func (p *parser) expectKeyword(kw string) error {
	tok := p.current()
	if !p.isKeyword(tok, kw) {
		return fmt.Errorf("expected %s found %s", kw, p.describe(tok))
	}
	p.advance()
	return nil
}

func (p *parser) expectSymbol(sym string) error {
	tok := p.current()
	if tok.Type != lexer.SYMBOL || tok.Literal != sym {
		return fmt.Errorf("expected %s found %s", sym, p.describe(tok))
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	tok := p.current()
	if tok.Type != lexer.IDENT {
		return "", fmt.Errorf("expected identifier found %s", p.describe(tok))
	}
	p.advance()
	return tok.Literal, nil
}

// ---- CREATE TABLE ----

func (p *parser) parseCreate() (Statement, error) {
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var columns []ColumnDef
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)

		tok := p.current()
		if tok.Type == lexer.SYMBOL && tok.Literal == "," {
			p.advance()
			continue
		}
		break
	}

	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}

	return &CreateStmt{Table: table, Columns: columns}, nil
}

func (p *parser) parseColumnDef() (ColumnDef, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ColumnDef{}, err
	}

	typ, err := p.parseColumnType()
	if err != nil {
		return ColumnDef{}, err
	}

	col := ColumnDef{Name: name, Type: typ, Nullable: true}

	for {
		tok := p.current()
		switch {
		case p.isKeyword(tok, "PRIMARY"):
			p.advance()
			if err := p.expectKeyword("KEY"); err != nil {
				return ColumnDef{}, err
			}
			col.PrimaryKey = true
			col.Nullable = false
		case p.isKeyword(tok, "FOREIGN"):
			p.advance()
			if err := p.expectKeyword("KEY"); err != nil {
				return ColumnDef{}, err
			}
			if err := p.expectKeyword("REFERENCES"); err != nil {
				return ColumnDef{}, err
			}
			refTable, err := p.expectIdent()
			if err != nil {
				return ColumnDef{}, err
			}
			if err := p.expectSymbol("("); err != nil {
				return ColumnDef{}, err
			}
			refColumn, err := p.expectIdent()
			if err != nil {
				return ColumnDef{}, err
			}
			if err := p.expectSymbol(")"); err != nil {
				return ColumnDef{}, err
			}
			col.ForeignKey = &ForeignKeyRef{Table: refTable, Column: refColumn}
		case p.isKeyword(tok, "NOT"):
			p.advance()
			if err := p.expectKeyword("NULL"); err != nil {
				return ColumnDef{}, err
			}
			col.Nullable = false
			col.NotNull = true
		case p.isKeyword(tok, "DEFAULT"):
			p.advance()
			lit, err := p.parseLiteral()
			if err != nil {
				return ColumnDef{}, err
			}
			col.Default = &lit
		default:
			return col, nil
		}
	}
}

func (p *parser) parseColumnType() (types.Type, error) {
	tok := p.current()
	switch {
	case p.isKeyword(tok, "INTEGER"):
		p.advance()
		return types.NewInteger(), nil
	case p.isKeyword(tok, "CHARACTER"):
		p.advance()
		if cur := p.current(); cur.Type == lexer.SYMBOL && cur.Literal == "(" {
			p.advance()
			sizeTok := p.current()
			if sizeTok.Type != lexer.NUMERIC_CONSTANT {
				return types.Type{}, fmt.Errorf("expected unsigned byte found %s", p.describe(sizeTok))
			}
			p.advance()
			size, err := parseByteSize(sizeTok.Literal)
			if err != nil {
				return types.Type{}, err
			}
			if err := p.expectSymbol(")"); err != nil {
				return types.Type{}, err
			}
			return types.NewCharacter(uint8(size)), nil
		}
		return types.NewCharacterUnsized(), nil
	default:
		return types.Type{}, fmt.Errorf("expected INTEGER or CHARACTER found %s", p.describe(tok))
	}
}

// parseByteSize parses a CHARACTER size literal as an unsigned byte,
// surfacing the underlying parse failure with Rust-style integer-parser
// wording rather than Go's own strconv.NumError phrasing.
func parseByteSize(digits string) (uint8, error) {
	size, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			switch numErr.Err {
			case strconv.ErrRange:
				return 0, errors.New("number too large to fit in target type")
			case strconv.ErrSyntax:
				return 0, errors.New("invalid digit found in string")
			}
		}
		return 0, err
	}
	return uint8(size), nil
}

func (p *parser) parseLiteral() (Literal, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.NUMERIC_CONSTANT:
		p.advance()
		return Literal{Kind: NumericLiteral, Text: tok.Literal}, nil
	case lexer.STRING_CONSTANT:
		p.advance()
		return Literal{Kind: StringLiteral, Text: tok.Literal}, nil
	default:
		return Literal{}, fmt.Errorf("expected literal found %s", p.describe(tok))
	}
}

// ---- INSERT ----

func (p *parser) parseInsert() (Statement, error) {
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var columns []string
	if tok := p.current(); tok.Type == lexer.SYMBOL && tok.Literal == "(" {
		p.advance()
		for {
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			columns = append(columns, name)
			tok := p.current()
			if tok.Type == lexer.SYMBOL && tok.Literal == "," {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
	}

	stmt := &InsertStmt{Table: table, Columns: columns}

	switch tok := p.current(); {
	case p.isKeyword(tok, "VALUES"):
		p.advance()
		row, err := p.parseValuesRow()
		if err != nil {
			return nil, err
		}
		stmt.Row = row
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
	case p.isKeyword(tok, "SELECT"):
		p.advance()
		sub, err := p.parseSelectBody()
		if err != nil {
			return nil, err
		}
		stmt.Sub = sub
	default:
		return nil, fmt.Errorf("expected VALUES or SELECT found %s", p.describe(tok))
	}

	return stmt, nil
}

func (p *parser) parseValuesRow() ([]Literal, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var row []Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		row = append(row, lit)
		tok := p.current()
		if tok.Type == lexer.SYMBOL && tok.Literal == "," {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return row, nil
}

// ---- SELECT ----

func (p *parser) parseSelectStatement() (Statement, error) {
	stmt, err := p.parseSelectBody()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseSelectBody() (*SelectStmt, error) {
	var columns []string
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		columns = append(columns, name)
		tok := p.current()
		if tok.Type == lexer.SYMBOL && tok.Literal == "," {
			p.advance()
			continue
		}
		break
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	predicate, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	return &SelectStmt{Table: table, Columns: columns, Predicate: predicate}, nil
}

// ---- DELETE ----

func (p *parser) parseDelete() (Statement, error) {
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	predicate, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return &DeleteStmt{Table: table, Predicate: predicate}, nil
}

// ---- WHERE predicate ----

func (p *parser) parseOptionalWhere() (*Predicate, error) {
	if !p.isKeyword(p.current(), "WHERE") {
		return nil, nil
	}
	p.advance()

	left, err := p.parsePredicateArg()
	if err != nil {
		return nil, err
	}

	op, err := p.parsePredicateOp()
	if err != nil {
		return nil, err
	}

	right, err := p.parsePredicateArg()
	if err != nil {
		return nil, err
	}

	return &Predicate{Left: left, Op: op, Right: right}, nil
}

func (p *parser) parsePredicateOp() (Op, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.EQUAL_TO:
		p.advance()
		return Eq, nil
	case lexer.NOT_EQUAL_TO:
		p.advance()
		return NotEq, nil
	default:
		return 0, fmt.Errorf("expected = or <> found %s", p.describe(tok))
	}
}

func (p *parser) parsePredicateArg() (Arg, error) {
	tok := p.current()
	switch {
	case p.isKeyword(tok, "LIMIT"):
		p.advance()
		return Arg{Kind: ArgLimit}, nil
	case tok.Type == lexer.IDENT:
		p.advance()
		return Arg{Kind: ArgColumn, Text: tok.Literal}, nil
	case tok.Type == lexer.NUMERIC_CONSTANT:
		p.advance()
		return Arg{Kind: ArgNumeric, Text: tok.Literal}, nil
	case tok.Type == lexer.STRING_CONSTANT:
		p.advance()
		return Arg{Kind: ArgString, Text: tok.Literal}, nil
	default:
		return Arg{}, fmt.Errorf("expected column, literal or LIMIT found %s", p.describe(tok))
	}
}
