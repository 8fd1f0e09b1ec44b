package interpreter

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.Identifier:
		return lookup(n, env)
	case *ast.ParenthesizedExpression:
		return i.evaluateExpression(n.Inner, env)
	case *ast.ArithmeticChain:
		return i.evaluateChain(n, env)
	case ast.BooleanExpression:
		b, err := i.evaluateBoolean(n, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: b}, nil
	case nil:
		return nil, fmt.Errorf("missing expression")
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func lookup(id *ast.Identifier, env *runtime.Environment) (runtime.Value, error) {
	val, ok := env.Lookup(id.Name)
	if !ok {
		return nil, &UndeclaredVariableError{Name: id.Name, Pos: startOf(id)}
	}
	if runtime.IsUnset(val) {
		return nil, &UseOfUnsetVariableError{Name: id.Name, Pos: startOf(id)}
	}
	return val, nil
}

// evaluateChain folds the chain left to right: a - b - c is (a - b) - c.
func (i *Interpreter) evaluateChain(chain *ast.ArithmeticChain, env *runtime.Environment) (runtime.Value, error) {
	acc, err := i.evaluateExpression(chain.Head, env)
	if err != nil {
		return nil, err
	}
	for _, link := range chain.Tail {
		right, err := i.evaluateExpression(link.Operand, env)
		if err != nil {
			return nil, err
		}
		if acc, err = applyArithmetic(link.Operator, acc, right, link.Operand); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// applyArithmetic combines two numeric values. Int with Float promotes to
// Float; Int arithmetic wraps on overflow.
func applyArithmetic(op string, left, right runtime.Value, operand ast.Node) (runtime.Value, error) {
	if !isNumericValue(left) || !isNumericValue(right) {
		return nil, &TypeError{
			Message: fmt.Sprintf("operator '%s' requires numeric operands, got %s and %s", op, left.Kind(), right.Kind()),
			Pos:     startOf(operand),
		}
	}
	li, lInt := left.(runtime.IntValue)
	ri, rInt := right.(runtime.IntValue)
	if lInt && rInt {
		return applyIntOperator(op, li.Val, ri.Val, operand)
	}
	if op == "%" {
		return nil, &TypeError{
			Message: fmt.Sprintf("operator '%%' requires int operands, got %s and %s", left.Kind(), right.Kind()),
			Pos:     startOf(operand),
		}
	}
	return applyFloatOperator(op, numericToFloat(left), numericToFloat(right), operand)
}

func applyIntOperator(op string, l, r int64, operand ast.Node) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.IntValue{Val: l + r}, nil
	case "-":
		return runtime.IntValue{Val: l - r}, nil
	case "*":
		return runtime.IntValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, &DivisionByZeroError{Operator: op, Pos: startOf(operand)}
		}
		return runtime.IntValue{Val: l / r}, nil
	case "%":
		if r == 0 {
			return nil, &DivisionByZeroError{Operator: op, Pos: startOf(operand)}
		}
		return runtime.IntValue{Val: l % r}, nil
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator %s", op)
	}
}

func applyFloatOperator(op string, l, r float64, operand ast.Node) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.FloatValue{Val: l + r}, nil
	case "-":
		return runtime.FloatValue{Val: l - r}, nil
	case "*":
		return runtime.FloatValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, &DivisionByZeroError{Operator: op, Pos: startOf(operand)}
		}
		return runtime.FloatValue{Val: l / r}, nil
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator %s", op)
	}
}

func isNumericValue(val runtime.Value) bool {
	switch val.(type) {
	case runtime.IntValue, runtime.FloatValue:
		return true
	default:
		return false
	}
}

func numericToFloat(val runtime.Value) float64 {
	switch v := val.(type) {
	case runtime.FloatValue:
		return v.Val
	case runtime.IntValue:
		return float64(v.Val)
	default:
		return 0
	}
}
