package lexer

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	EOF Kind = iota

	IntLiteral
	FloatLiteral
	Identifier

	If
	Else
	While
	TypeName
	True
	False

	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Eq
	NotEq
	Lt
	Lte
	Gt
	Gte
	And
	Or
	Not

	LParen
	RParen
	LBrace
	RBrace
	Comma
	Semicolon
)

var kindNames = [...]string{
	EOF:          "EOF",
	IntLiteral:   "IntLiteral",
	FloatLiteral: "FloatLiteral",
	Identifier:   "Identifier",
	If:           "If",
	Else:         "Else",
	While:        "While",
	TypeName:     "TypeName",
	True:         "True",
	False:        "False",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Percent:      "Percent",
	Assign:       "Assign",
	Eq:           "Eq",
	NotEq:        "NotEq",
	Lt:           "Lt",
	Lte:          "Lte",
	Gt:           "Gt",
	Gte:          "Gte",
	And:          "And",
	Or:           "Or",
	Not:          "Not",
	LParen:       "LParen",
	RParen:       "RParen",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	Comma:        "Comma",
	Semicolon:    "Semicolon",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// Describe returns the form used in diagnostics: the literal spelling for
// fixed tokens and the category name for literals and identifiers.
func (k Kind) Describe() string {
	switch k {
	case EOF:
		return "end of input"
	case IntLiteral:
		return "integer literal"
	case FloatLiteral:
		return "float literal"
	case Identifier:
		return "identifier"
	case TypeName:
		return "type name"
	}
	if spelling, ok := fixedSpellings[k]; ok {
		return fmt.Sprintf("'%s'", spelling)
	}
	return k.String()
}

var fixedSpellings = map[Kind]string{
	If:        "if",
	Else:      "else",
	While:     "while",
	True:      "true",
	False:     "false",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Assign:    "=",
	Eq:        "==",
	NotEq:     "!=",
	Lt:        "<",
	Lte:       "<=",
	Gt:        ">",
	Gte:       ">=",
	And:       "&&",
	Or:        "||",
	Not:       "not",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Comma:     ",",
	Semicolon: ";",
}

// Spelling returns the canonical source text of a fixed token kind.
func (k Kind) Spelling() (string, bool) {
	s, ok := fixedSpellings[k]
	return s, ok
}

var keywords = map[string]Kind{
	"if":    If,
	"else":  Else,
	"while": While,
	"int":   TypeName,
	"float": TypeName,
	"bool":  TypeName,
	"true":  True,
	"false": False,
	"not":   Not,
}

// Position locates a token in the source. Line and Column are 1-based.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Tokens are immutable once produced.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
