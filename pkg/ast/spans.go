package ast

import "fmt"

// Position is a 1-based line/column location plus the byte offset.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span covers the source text that produced a node. End points just past
// the last character.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsZero reports whether the span was never set (hand-built trees).
func (s Span) IsZero() bool {
	return s == Span{}
}

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// Describe formats the start of a node's span for diagnostics, or "" when
// the node carries no location.
func Describe(node Node) string {
	if node == nil || node.Span().IsZero() {
		return ""
	}
	return node.Span().Start.String()
}
