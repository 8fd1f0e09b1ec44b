package parser

import (
	"fmt"
	"strconv"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
)

var (
	additiveOperators       = []lexer.Kind{lexer.Plus, lexer.Minus}
	multiplicativeOperators = []lexer.Kind{lexer.Star, lexer.Slash, lexer.Percent}
	comparisonOperators     = []lexer.Kind{lexer.Eq, lexer.NotEq, lexer.Lt, lexer.Lte, lexer.Gt, lexer.Gte}
)

//-----------------------------------------------------------------------------
// Arithmetic
//-----------------------------------------------------------------------------

func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseChain(additiveOperators, p.parseTerm)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.parseChain(multiplicativeOperators, p.parseFactor)
}

// parseChain reads operand (op operand)* for one precedence level and keeps
// the operators in source order. A lone operand is returned as is.
func (p *Parser) parseChain(ops []lexer.Kind, operand func() (ast.Expression, error)) (ast.Expression, error) {
	start := p.current().Pos
	head, err := operand()
	if err != nil {
		return nil, err
	}
	return p.extendChain(ops, head, operand, start)
}

// extendChain continues a chain whose head has already been parsed.
func (p *Parser) extendChain(ops []lexer.Kind, head ast.Expression, operand func() (ast.Expression, error), start lexer.Position) (ast.Expression, error) {
	var tail []ast.ChainLink
	for p.at(ops...) {
		op := p.advance()
		next, err := operand()
		if err != nil {
			return nil, err
		}
		tail = append(tail, ast.ChainLink{Operator: op.Lexeme, Operand: next})
	}
	if len(tail) == 0 {
		return head, nil
	}
	chain := ast.NewArithmeticChain(head, tail)
	p.finish(chain, start)
	return chain, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.Identifier:
		if p.peekKind(1) == lexer.LParen {
			return nil, p.callError()
		}
		return p.parseIdentifier()
	case lexer.IntLiteral:
		p.advance()
		val, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Expected: "integer literal",
				Found:    tok,
				Pos:      tok.Pos,
				Message:  fmt.Sprintf("integer literal %s out of range", tok.Lexeme),
			}
		}
		lit := ast.NewIntegerLiteral(val, tok.Lexeme)
		p.finish(lit, tok.Pos)
		return lit, nil
	case lexer.FloatLiteral:
		p.advance()
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &ParseError{
				Expected: "float literal",
				Found:    tok,
				Pos:      tok.Pos,
				Message:  fmt.Sprintf("float literal %s out of range", tok.Lexeme),
			}
		}
		lit := ast.NewFloatLiteral(val, tok.Lexeme)
		p.finish(lit, tok.Pos)
		return lit, nil
	case lexer.LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		paren := ast.NewParenthesizedExpression(inner)
		p.finish(paren, tok.Pos)
		return paren, nil
	default:
		return nil, p.errorf("expression")
	}
}

//-----------------------------------------------------------------------------
// Boolean
//-----------------------------------------------------------------------------

func (p *Parser) parseBoolExpr() (ast.BooleanExpression, error) {
	return p.parseLogical(lexer.Or, ast.LogicalOr, p.parseBTerm)
}

func (p *Parser) parseBTerm() (ast.BooleanExpression, error) {
	return p.parseLogical(lexer.And, ast.LogicalAnd, p.parseBAnd)
}

func (p *Parser) parseLogical(kind lexer.Kind, op ast.LogicalOperator, operand func() (ast.BooleanExpression, error)) (ast.BooleanExpression, error) {
	start := p.current().Pos
	first, err := operand()
	if err != nil {
		return nil, err
	}
	if !p.at(kind) {
		return first, nil
	}
	operands := []ast.BooleanExpression{first}
	for p.at(kind) {
		p.advance()
		next, err := operand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	chain := ast.NewLogicalChain(op, operands)
	p.finish(chain, start)
	return chain, nil
}

func (p *Parser) parseBAnd() (ast.BooleanExpression, error) {
	if !p.at(lexer.Not) {
		return p.parseComparison()
	}
	start := p.advance().Pos
	operand, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	not := ast.NewNotExpression(operand)
	p.finish(not, start)
	return not, nil
}

func (p *Parser) parseComparison() (ast.BooleanExpression, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.True, lexer.False:
		p.advance()
		lit := ast.NewBooleanLiteral(tok.Kind == lexer.True)
		p.finish(lit, tok.Pos)
		return lit, nil
	case lexer.LParen:
		return p.parseParenthesized()
	}
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.finishComparison(left, tok.Pos)
}

// parseParenthesized handles '(' in boolean position. The contents are read
// as a BoolExpr; when they turn out to be purely arithmetic, as in
// (a + b) * 2 < c, the parenthesis becomes the first factor of an
// arithmetic operand and parsing continues from there.
func (p *Parser) parseParenthesized() (ast.BooleanExpression, error) {
	start := p.advance().Pos
	inner, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	vt, isValue := inner.(*ast.ValueTest)
	if !isValue {
		return inner, nil
	}
	factor := ast.NewParenthesizedExpression(vt.Expr)
	p.finish(factor, start)
	term, err := p.extendChain(multiplicativeOperators, factor, p.parseFactor, start)
	if err != nil {
		return nil, err
	}
	left, err := p.extendChain(additiveOperators, term, p.parseTerm, start)
	if err != nil {
		return nil, err
	}
	return p.finishComparison(left, start)
}

// finishComparison reads an optional comparison operator and right operand.
// Without one, left is used as a value test.
func (p *Parser) finishComparison(left ast.Expression, start lexer.Position) (ast.BooleanExpression, error) {
	if !p.at(comparisonOperators...) {
		test := ast.NewValueTest(left)
		p.finish(test, start)
		return test, nil
	}
	op := p.advance()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	cmp := ast.NewComparison(op.Lexeme, left, right)
	p.finish(cmp, start)
	return cmp, nil
}
