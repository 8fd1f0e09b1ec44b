package lexer

import "fmt"

// LexError reports a character that starts no token.
type LexError struct {
	Pos  Position
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer: unexpected character %q at %s", e.Char, e.Pos)
}

// Tokenize scans the whole source and returns its tokens in order. The
// result never contains an EOF token.
func Tokenize(source string) ([]Token, error) {
	s := newScanner(source)
	var tokens []Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

type scanner struct {
	src    string
	cursor int
	line   int
	col    int
}

func newScanner(source string) *scanner {
	return &scanner{src: source, line: 1, col: 1}
}

func (s *scanner) next() (Token, error) {
	s.skipWhitespace()
	pos := s.pos()
	if s.cursor >= len(s.src) {
		return Token{Kind: EOF, Pos: pos}, nil
	}

	ch := s.src[s.cursor]
	switch {
	case isDigit(ch):
		return s.scanNumber(), nil
	case isIdentStart(ch):
		return s.scanWord(), nil
	}

	if kind, ok := s.matchTwo(); ok {
		return s.emit(kind, 2), nil
	}
	if kind, ok := singleChar[ch]; ok {
		return s.emit(kind, 1), nil
	}
	return Token{}, &LexError{Pos: pos, Char: s.runeAt()}
}

var twoChar = map[string]Kind{
	"==": Eq,
	"!=": NotEq,
	"<=": Lte,
	">=": Gte,
	"&&": And,
	"||": Or,
}

var singleChar = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'%': Percent,
	'=': Assign,
	'<': Lt,
	'>': Gt,
	'!': Not,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	',': Comma,
	';': Semicolon,
}

func (s *scanner) matchTwo() (Kind, bool) {
	if s.cursor+2 > len(s.src) {
		return 0, false
	}
	kind, ok := twoChar[s.src[s.cursor:s.cursor+2]]
	return kind, ok
}

// scanNumber prefers a float when the digits are followed by '.' and at least one digit.
func (s *scanner) scanNumber() Token {
	end := s.cursor
	for end < len(s.src) && isDigit(s.src[end]) {
		end++
	}
	if end+1 < len(s.src) && s.src[end] == '.' && isDigit(s.src[end+1]) {
		end++
		for end < len(s.src) && isDigit(s.src[end]) {
			end++
		}
		return s.emit(FloatLiteral, end-s.cursor)
	}
	return s.emit(IntLiteral, end-s.cursor)
}

func (s *scanner) scanWord() Token {
	end := s.cursor
	for end < len(s.src) && (isIdentStart(s.src[end]) || isDigit(s.src[end])) {
		end++
	}
	kind := Identifier
	if kw, ok := keywords[s.src[s.cursor:end]]; ok {
		kind = kw
	}
	return s.emit(kind, end-s.cursor)
}

func (s *scanner) emit(kind Kind, length int) Token {
	tok := Token{Kind: kind, Lexeme: s.src[s.cursor : s.cursor+length], Pos: s.pos()}
	s.cursor += length
	s.col += length
	return tok
}

func (s *scanner) skipWhitespace() {
	for s.cursor < len(s.src) {
		switch s.src[s.cursor] {
		case ' ', '\t', '\r':
			s.cursor++
			s.col++
		case '\n':
			s.cursor++
			s.line++
			s.col = 1
		default:
			return
		}
	}
}

func (s *scanner) pos() Position {
	return Position{Offset: s.cursor, Line: s.line, Column: s.col}
}

func (s *scanner) runeAt() rune {
	for _, r := range s.src[s.cursor:] {
		return r
	}
	return 0
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}
