package parser

import (
	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
)

// parseStatementList reads statements until terminator or until the input no
// longer continues the list. A ';' separates statements and may trail the
// last one; it may be omitted after a statement that ends in a block.
func (p *Parser) parseStatementList(terminator lexer.Kind) ([]ast.Statement, error) {
	body := make([]ast.Statement, 0)
	for !p.at(terminator) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if p.at(lexer.Semicolon) {
			p.advance()
		} else if !endsWithBlock(stmt) {
			break
		}
		if !p.at(statementStarts...) {
			break
		}
	}
	return body, nil
}

var statementStarts = []lexer.Kind{lexer.If, lexer.While, lexer.LBrace, lexer.TypeName, lexer.Identifier}

func endsWithBlock(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.Block, *ast.IfStatement, *ast.WhileStatement:
		return true
	default:
		return false
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Kind {
	case lexer.If:
		return p.parseIfStatement()
	case lexer.While:
		return p.parseWhileStatement()
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.TypeName:
		return p.parseDeclareStatement()
	case lexer.Identifier:
		return p.parseAssignStatement()
	default:
		return nil, p.errorf("statement")
	}
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	start := p.advance().Pos
	cond, err := p.parseGuard()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els *ast.Block
	if p.at(lexer.Else) {
		p.advance()
		if els, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	stmt := ast.NewIfStatement(cond, then, els)
	p.finish(stmt, start)
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	start := p.advance().Pos
	cond, err := p.parseGuard()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewWhileStatement(cond, body)
	p.finish(stmt, start)
	return stmt, nil
}

// parseGuard reads the parenthesised condition of if/while.
func (p *Parser) parseGuard() (ast.BooleanExpression, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.LBrace)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatementList(lexer.RBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	block := ast.NewBlock(body)
	p.finish(block, open.Pos)
	return block, nil
}

func (p *Parser) parseDeclareStatement() (*ast.DeclareStatement, error) {
	typeTok := p.advance()
	var names []*ast.Identifier
	for {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, id)
		if !p.at(lexer.Comma) {
			break
		}
		p.advance()
	}
	stmt := ast.NewDeclareStatement(typeTok.Lexeme, names)
	p.finish(stmt, typeTok.Pos)
	return stmt, nil
}

func (p *Parser) parseAssignStatement() (*ast.AssignStatement, error) {
	start := p.current().Pos
	if p.peekKind(1) == lexer.LParen {
		return nil, p.callError()
	}
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewAssignStatement(target, unwrapValueTest(value))
	p.finish(stmt, start)
	return stmt, nil
}

// unwrapValueTest turns a boolean expression that is only an arithmetic
// expression back into that expression.
func unwrapValueTest(expr ast.BooleanExpression) ast.Expression {
	if vt, ok := expr.(*ast.ValueTest); ok {
		return vt.Expr
	}
	return expr
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	id := ast.NewIdentifier(tok.Lexeme)
	p.finish(id, tok.Pos)
	return id, nil
}

func (p *Parser) callError() *ParseError {
	tok := p.current()
	return &ParseError{
		Expected: "expression",
		Found:    tok,
		Pos:      tok.Pos,
		Message:  "function calls are not supported (call to '" + tok.Lexeme + "')",
	}
}
