package parser

import (
	"strings"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
)

func toPosition(pos lexer.Position) ast.Position {
	return ast.Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

// finish annotates node with the span from start to the end of the last
// consumed token.
func (p *Parser) finish(node ast.Node, start lexer.Position) {
	end := p.lastEnd
	if end.Offset < start.Offset {
		end = start
	}
	ast.SetSpan(node, ast.Span{Start: toPosition(start), End: toPosition(end)})
}

// Lexemes never span lines, so the end column is a plain offset.
func tokenEnd(tok lexer.Token) lexer.Position {
	return lexer.Position{
		Offset: tok.Pos.Offset + len(tok.Lexeme),
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column + len(tok.Lexeme),
	}
}

func endOf(tokens []lexer.Token) lexer.Position {
	if len(tokens) == 0 {
		return lexer.Position{Line: 1, Column: 1}
	}
	return tokenEnd(tokens[len(tokens)-1])
}

func sourceEnd(source string) lexer.Position {
	line := 1 + strings.Count(source, "\n")
	col := len(source) - strings.LastIndex(source, "\n")
	return lexer.Position{Offset: len(source), Line: line, Column: col}
}
