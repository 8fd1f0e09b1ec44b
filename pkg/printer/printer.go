// Package printer renders AST nodes back to canonical source text.
package printer

import (
	"strconv"
	"strings"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/parser"
)

// Indent is the per-level indentation used for block bodies.
const Indent = "  "

type out struct {
	b     strings.Builder
	depth int
}

func (o *out) write(s string) { o.b.WriteString(s) }
func (o *out) nl()            { o.b.WriteByte('\n') }
func (o *out) pad() {
	for i := 0; i < o.depth; i++ {
		o.b.WriteString(Indent)
	}
}
func (o *out) withIndent(fn func()) { o.depth++; fn(); o.depth-- }

// Pretty parses source and returns it in canonical form.
func Pretty(source string) (string, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	return Format(prog), nil
}

// Format renders a program one statement per line. The result ends with a
// newline unless the program is empty.
func Format(prog *ast.Program) string {
	var o out
	if prog == nil {
		return ""
	}
	for _, stmt := range prog.Body {
		o.statement(stmt)
	}
	return o.b.String()
}

// FormatExpression renders an arithmetic or boolean expression on one line.
func FormatExpression(expr ast.Expression) string {
	var o out
	o.expression(expr)
	return o.b.String()
}

func (o *out) statement(stmt ast.Statement) {
	o.pad()
	switch s := stmt.(type) {
	case *ast.DeclareStatement:
		o.write(s.TypeName)
		o.write(" ")
		for i, id := range s.Names {
			if i > 0 {
				o.write(", ")
			}
			o.write(id.Name)
		}
		o.write(";")
	case *ast.AssignStatement:
		o.write(s.Target.Name)
		o.write(" = ")
		o.expression(s.Value)
		o.write(";")
	case *ast.IfStatement:
		o.write("if (")
		o.boolean(s.Condition)
		o.write(") ")
		o.block(s.Then)
		if s.Else != nil {
			o.write(" else ")
			o.block(s.Else)
		}
	case *ast.WhileStatement:
		o.write("while (")
		o.boolean(s.Condition)
		o.write(") ")
		o.block(s.Body)
	case *ast.Block:
		o.block(s)
	}
	o.nl()
}

func (o *out) block(b *ast.Block) {
	if b == nil || len(b.Body) == 0 {
		o.write("{}")
		return
	}
	o.write("{")
	o.nl()
	o.withIndent(func() {
		for _, stmt := range b.Body {
			o.statement(stmt)
		}
	})
	o.pad()
	o.write("}")
}

//-----------------------------------------------------------------------------
// Arithmetic
//-----------------------------------------------------------------------------

const (
	levelAdditive = iota + 1
	levelMultiplicative
	levelAtom
)

func operatorLevel(op string) int {
	switch op {
	case "*", "/", "%":
		return levelMultiplicative
	default:
		return levelAdditive
	}
}

func expressionLevel(expr ast.Expression) int {
	chain, ok := expr.(*ast.ArithmeticChain)
	if !ok || len(chain.Tail) == 0 {
		return levelAtom
	}
	level := levelAtom
	for _, link := range chain.Tail {
		level = min(level, operatorLevel(link.Operator))
	}
	return level
}

func (o *out) expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		o.write(e.Name)
	case *ast.IntegerLiteral:
		if e.Raw != "" {
			o.write(e.Raw)
		} else {
			o.write(strconv.FormatInt(e.Value, 10))
		}
	case *ast.FloatLiteral:
		if e.Raw != "" {
			o.write(e.Raw)
		} else {
			o.write(formatFloat(e.Value))
		}
	case *ast.ParenthesizedExpression:
		o.write("(")
		o.expression(e.Inner)
		o.write(")")
	case *ast.ArithmeticChain:
		o.chain(e)
	case ast.BooleanExpression:
		o.boolean(e)
	}
}

// chain adds parentheses only where a hand-built tree nests chains in a way
// precedence alone would not reproduce.
func (o *out) chain(c *ast.ArithmeticChain) {
	if len(c.Tail) == 0 {
		o.expression(c.Head)
		return
	}
	level := expressionLevel(c)
	o.operand(c.Head, expressionLevel(c.Head) < level)
	for _, link := range c.Tail {
		o.write(" ")
		o.write(link.Operator)
		o.write(" ")
		o.operand(link.Operand, expressionLevel(link.Operand) <= level)
	}
}

func (o *out) operand(expr ast.Expression, group bool) {
	if _, isBool := expr.(ast.BooleanExpression); isBool {
		group = true
	}
	if group {
		o.write("(")
	}
	o.expression(expr)
	if group {
		o.write(")")
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

//-----------------------------------------------------------------------------
// Boolean
//-----------------------------------------------------------------------------

func (o *out) boolean(expr ast.BooleanExpression) {
	switch e := expr.(type) {
	case *ast.BooleanLiteral:
		o.write(strconv.FormatBool(e.Value))
	case *ast.Comparison:
		o.expression(e.Left)
		o.write(" ")
		o.write(e.Operator)
		o.write(" ")
		o.expression(e.Right)
	case *ast.ValueTest:
		o.expression(e.Expr)
	case *ast.NotExpression:
		o.write("not ")
		o.booleanOperand(e.Operand, needsGroupUnderNot(e.Operand))
	case *ast.LogicalChain:
		sep := " " + string(e.Operator) + " "
		for i, operand := range e.Operands {
			if i > 0 {
				o.write(sep)
			}
			o.booleanOperand(operand, needsGroupInChain(e.Operator, operand))
		}
	}
}

func (o *out) booleanOperand(expr ast.BooleanExpression, group bool) {
	if group {
		o.write("(")
	}
	o.boolean(expr)
	if group {
		o.write(")")
	}
}

func needsGroupUnderNot(operand ast.BooleanExpression) bool {
	switch operand.(type) {
	case *ast.LogicalChain, *ast.NotExpression:
		return true
	default:
		return false
	}
}

// needsGroupInChain keeps a nested chain nested: only && directly under ||
// is implied by precedence.
func needsGroupInChain(outer ast.LogicalOperator, operand ast.BooleanExpression) bool {
	inner, ok := operand.(*ast.LogicalChain)
	if !ok {
		return false
	}
	return !(outer == ast.LogicalOr && inner.Operator == ast.LogicalAnd)
}
