package parser

import (
	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
)

// Parser is a recursive-descent parser over a token slice with one token of
// lookahead.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	lastEnd lexer.Position
	eof     lexer.Token
}

// New prepares a parser for tokens produced by lexer.Tokenize.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, eof: lexer.Token{Kind: lexer.EOF, Pos: endOf(tokens)}}
}

// Parse tokenizes and parses a complete program.
func Parse(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := New(tokens)
	p.eof.Pos = sourceEnd(source)
	return p.ParseProgram()
}

// ParseProgram parses tokens as a top-level statement list.
func ParseProgram(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseBoolean parses source as a single boolean expression.
func ParseBoolean(source string) (ast.BooleanExpression, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := New(tokens)
	p.eof.Pos = sourceEnd(source)
	expr, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseExpression parses source as a single arithmetic expression.
func ParseExpression(source string) (ast.Expression, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := New(tokens)
	p.eof.Pos = sourceEnd(source)
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseProgram consumes every token. Leftover input after the statement list
// is an UnexpectedTrailingTokenError.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.current().Pos
	body, err := p.parseStatementList(lexer.EOF)
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	prog := ast.NewProgram(body)
	p.finish(prog, start)
	return prog, nil
}

func (p *Parser) expectEnd() error {
	if tok := p.current(); tok.Kind != lexer.EOF {
		return &UnexpectedTrailingTokenError{Token: tok}
	}
	return nil
}

func (p *Parser) current() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eof
}

func (p *Parser) peekKind(offset int) lexer.Kind {
	if p.pos+offset < len(p.tokens) {
		return p.tokens[p.pos+offset].Kind
	}
	return lexer.EOF
}

func (p *Parser) at(kinds ...lexer.Kind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
		p.lastEnd = tokenEnd(tok)
	}
	return tok
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	if !p.at(kind) {
		return lexer.Token{}, p.errorf(kind.Describe())
	}
	return p.advance(), nil
}

func (p *Parser) errorf(expected string) *ParseError {
	tok := p.current()
	return &ParseError{Expected: expected, Found: tok, Pos: tok.Pos}
}
