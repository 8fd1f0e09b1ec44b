package interpreter

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
)

func locate(pos ast.Position) string {
	if pos == (ast.Position{}) {
		return ""
	}
	return " at " + pos.String()
}

func startOf(node ast.Node) ast.Position {
	if node == nil {
		return ast.Position{}
	}
	return node.Span().Start
}

// UndeclaredVariableError reports a read or assignment of a name that was
// never declared.
type UndeclaredVariableError struct {
	Name string
	Pos  ast.Position
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("interpreter: undeclared variable '%s'%s", e.Name, locate(e.Pos))
}

// UseOfUnsetVariableError reports a read of a declared variable that has no
// value yet.
type UseOfUnsetVariableError struct {
	Name string
	Pos  ast.Position
}

func (e *UseOfUnsetVariableError) Error() string {
	return fmt.Sprintf("interpreter: variable '%s' used before assignment%s", e.Name, locate(e.Pos))
}

// DivisionByZeroError reports '/' or '%' with a zero divisor. Pos is the
// divisor's position.
type DivisionByZeroError struct {
	Operator string
	Pos      ast.Position
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("interpreter: division by zero in '%s'%s", e.Operator, locate(e.Pos))
}

// TypeError reports an operator or guard applied to values of the wrong kind.
type TypeError struct {
	Message string
	Pos     ast.Position
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("interpreter: type error: %s%s", e.Message, locate(e.Pos))
}

// StepLimitError reports a run that exceeded the budget set by WithStepLimit.
type StepLimitError struct {
	Limit int
	Pos   ast.Position
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("interpreter: step limit of %d exceeded%s", e.Limit, locate(e.Pos))
}
