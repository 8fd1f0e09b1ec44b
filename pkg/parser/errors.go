package parser

import (
	"errors"
	"fmt"

	"minilang/interpreter-go/pkg/lexer"
)

// ParseError reports a grammar violation at a specific token.
type ParseError struct {
	Expected string
	Found    lexer.Token
	Pos      lexer.Position
	Message  string
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("parser: %s at %s", e.Message, e.Pos)
	}
	return fmt.Sprintf("parser: expected %s, found %s at %s", e.Expected, describeToken(e.Found), e.Pos)
}

// UnexpectedTrailingTokenError reports input left over after a complete
// statement list.
type UnexpectedTrailingTokenError struct {
	Token lexer.Token
}

func (e *UnexpectedTrailingTokenError) Error() string {
	return fmt.Sprintf("parser: unexpected trailing token %s at %s", describeToken(e.Token), e.Token.Pos)
}

// IsIncomplete reports whether err was caused by running out of input, which
// means more source could still complete the program.
func IsIncomplete(err error) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Found.Kind == lexer.EOF
	}
	return false
}

func describeToken(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.IntLiteral, lexer.FloatLiteral, lexer.Identifier, lexer.TypeName:
		return fmt.Sprintf("%s %q", tok.Kind.Describe(), tok.Lexeme)
	default:
		return fmt.Sprintf("'%s'", tok.Lexeme)
	}
}
